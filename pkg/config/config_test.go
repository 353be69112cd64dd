package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, `
[engine]
page_limit = 40
cache_capacity = 16

[data]
storage_engine = "kv"
phrase_file = "phrases.txt"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Engine.PageLimit != 40 || cfg.Engine.CacheCapacity != 16 {
		t.Errorf("engine section not applied: %+v", cfg.Engine)
	}
	if cfg.Engine.DefaultWeight != 10000 || cfg.Engine.OverflowLength != 4 {
		t.Errorf("defaults lost: %+v", cfg.Engine)
	}
	if cfg.Data.StorageEngine != "kv" || cfg.Data.DictPath != "shuangpin.db" {
		t.Errorf("data section: %+v", cfg.Data)
	}

	opts := cfg.DictionaryOptions()
	if opts.PageLimit != 40 || opts.CacheCapacity != 16 {
		t.Errorf("DictionaryOptions = %+v", opts)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	// page_limit has the wrong type, so the strict decode fails
	path := writeFile(t, `
[engine]
page_limit = "many"
cache_capacity = 32

[server]
max_sequence = 20
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Engine.PageLimit != 80 {
		t.Errorf("bad value should keep default, got %d", cfg.Engine.PageLimit)
	}
	if cfg.Engine.CacheCapacity != 32 || cfg.Server.MaxSequence != 20 {
		t.Errorf("valid values not recovered: %+v %+v", cfg.Engine, cfg.Server)
	}
}

func TestLoadConfigGarbage(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "[[[ not toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CLI.PageSize != 9 {
		t.Errorf("expected defaults, got %+v", cfg.CLI)
	}
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *reloaded != *cfg {
		t.Errorf("round trip mismatch: %+v vs %+v", reloaded, cfg)
	}
}

func TestResolveDataPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.PhraseFile = "/abs/phrases.txt"
	cfg.ResolveDataPaths("/base")

	if cfg.Data.DictPath != filepath.Join("/base", "shuangpin.db") {
		t.Errorf("DictPath = %s", cfg.Data.DictPath)
	}
	if cfg.Data.PhraseFile != "/abs/phrases.txt" {
		t.Errorf("absolute path changed: %s", cfg.Data.PhraseFile)
	}
	if cfg.Data.SyllableFile != "" {
		t.Errorf("empty path changed: %s", cfg.Data.SyllableFile)
	}
}
