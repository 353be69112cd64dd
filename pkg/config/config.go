/*
Package config manages TOML config for the shuangpin engine.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/shuangpin/internal/utils"
	"github.com/bastiangx/shuangpin/pkg/dictionary"
	"github.com/charmbracelet/log"
)

const appDir = "shuangpin"

// Config holds the entire config structure
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Data   DataConfig   `toml:"data"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// EngineConfig tunes candidate lookup.
type EngineConfig struct {
	PageLimit      int `toml:"page_limit"`
	CacheCapacity  int `toml:"cache_capacity"`
	DefaultWeight  int `toml:"default_weight"`
	OverflowLength int `toml:"overflow_length"`
	KeyHistory     int `toml:"key_history"`
}

// DataConfig locates the dictionary store and the scheme data files.
// Relative paths are resolved against the config directory.
type DataConfig struct {
	DictPath      string `toml:"dict_path"`
	StorageEngine string `toml:"storage_engine"`
	SyllableFile  string `toml:"syllable_file"`
	HelpCodeFile  string `toml:"helpcode_file"`
	PhraseFile    string `toml:"phrase_file"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxSequence int `toml:"max_sequence"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	PageSize int `toml:"page_size"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	opts := dictionary.DefaultOptions()
	return &Config{
		Engine: EngineConfig{
			PageLimit:      opts.PageLimit,
			CacheCapacity:  opts.CacheCapacity,
			DefaultWeight:  opts.DefaultWeight,
			OverflowLength: opts.OverflowLength,
			KeyHistory:     100,
		},
		Data: DataConfig{
			DictPath:      "shuangpin.db",
			StorageEngine: "bolt",
			HelpCodeFile:  "helpcode.txt",
		},
		Server: ServerConfig{
			MaxSequence: 60,
		},
		CLI: CliConfig{
			PageSize: 9,
		},
	}
}

// DictionaryOptions converts the engine section.
func (c *Config) DictionaryOptions() dictionary.Options {
	return dictionary.Options{
		PageLimit:      c.Engine.PageLimit,
		CacheCapacity:  c.Engine.CacheCapacity,
		DefaultWeight:  c.Engine.DefaultWeight,
		OverflowLength: c.Engine.OverflowLength,
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/shuangpin
// 2. ~/Library/Application Support/shuangpin (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", appDir)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", appDir)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/shuangpin/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}
	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Sections that fail to parse keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse picks the well-typed values out of a file that did not decode cleanly.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		extractEngineConfig(section, &config.Engine)
	}
	if section, ok := utils.ExtractSection(tempConfig, "data"); ok {
		extractDataConfig(section, &config.Data)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		if val, ok := utils.ExtractInt64(section, "max_sequence"); ok {
			config.Server.MaxSequence = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		if val, ok := utils.ExtractInt64(section, "page_size"); ok {
			config.CLI.PageSize = val
		}
	}
	return config, nil
}

func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	if val, ok := utils.ExtractInt64(data, "page_limit"); ok {
		engine.PageLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_capacity"); ok {
		engine.CacheCapacity = val
	}
	if val, ok := utils.ExtractInt64(data, "default_weight"); ok {
		engine.DefaultWeight = val
	}
	if val, ok := utils.ExtractInt64(data, "overflow_length"); ok {
		engine.OverflowLength = val
	}
	if val, ok := utils.ExtractInt64(data, "key_history"); ok {
		engine.KeyHistory = val
	}
}

func extractDataConfig(data map[string]any, d *DataConfig) {
	if val, ok := utils.ExtractString(data, "dict_path"); ok {
		d.DictPath = val
	}
	if val, ok := utils.ExtractString(data, "storage_engine"); ok {
		d.StorageEngine = val
	}
	if val, ok := utils.ExtractString(data, "syllable_file"); ok {
		d.SyllableFile = val
	}
	if val, ok := utils.ExtractString(data, "helpcode_file"); ok {
		d.HelpCodeFile = val
	}
	if val, ok := utils.ExtractString(data, "phrase_file"); ok {
		d.PhraseFile = val
	}
}

// ResolveDataPaths makes the relative data paths absolute against baseDir. Empty paths stay empty.
func (c *Config) ResolveDataPaths(baseDir string) {
	for _, p := range []*string{&c.Data.DictPath, &c.Data.SyllableFile, &c.Data.HelpCodeFile, &c.Data.PhraseFile} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(baseDir, *p)
		}
	}
}

// RebuildConfigFile force creates a new config.toml at the default path
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), defaultPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
