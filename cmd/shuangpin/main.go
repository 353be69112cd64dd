// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the shuangpin candidate engine as a MessagePack IPC server or as an
interactive CLI.

The engine turns Xiaohe double-pinyin keystrokes into ranked Chinese candidates. Typed letters
are segmented into syllables and abbreviations, looked up in a partitioned dictionary store and
optionally narrowed by trailing help codes.

# Usage

Start the server with the default config:

	shuangpin

Use a custom config and enable debug logging:

	shuangpin -config ./config.toml -d

Run the interactive CLI:

	shuangpin -c

# Configuration

The config file is created with defaults under ~/.config/shuangpin/config.toml:

	[engine]
	page_limit = 80
	cache_capacity = 128
	default_weight = 10000
	overflow_length = 4
	key_history = 100

	[data]
	dict_path = "shuangpin.db"
	storage_engine = "bolt"
	syllable_file = ""
	helpcode_file = "helpcode.txt"
	phrase_file = ""

	[server]
	max_sequence = 60

	[cli]
	page_size = 9

Relative data paths are looked up in the config directory, next to the binary and in the
working directory. Words are added with the spdict tool.

# IPC Protocol

Requests and responses are MessagePack values on stdin/stdout:

	{"id": "k1", "action": "key", "k": "nihc"}
	{"id": "k1", "s": "nihc", "g": "ni'hc", "st": "composing", "cs": [{"w": "你好", "r": 1}], "n": 1, "t": 85}

See package server for every action.

# Command Line Flags

	-config string
	    Path to a config file
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-page int
	    Candidates per CLI page (default from config)
	-rebuild-config
	    Rewrite the default config file and exit
	-version
	    Show current version
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bastiangx/shuangpin/internal/bootstrap"
	"github.com/bastiangx/shuangpin/internal/cli"
	"github.com/bastiangx/shuangpin/internal/utils"
	"github.com/bastiangx/shuangpin/pkg/config"
	"github.com/bastiangx/shuangpin/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "shuangpin"
	gh      = "https://github.com/bastiangx/shuangpin"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	log.SetOutput(os.Stderr)

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to a config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	pageSize := flag.Int("page", 0, "Candidates per CLI page (0 uses the config)")
	rebuild := flag.Bool("rebuild-config", false, "Rewrite the default config file and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *rebuild {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Print("Config rebuilt with defaults")
		return
	}

	cfg, loadedFrom, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	baseDir := ""
	if loadedFrom != "" {
		baseDir = filepath.Dir(loadedFrom)
	}
	resolver, err := utils.NewPathResolver(baseDir)
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	cfg.Data.DictPath = resolver.Resolve(cfg.Data.DictPath)
	cfg.Data.SyllableFile = resolver.Resolve(cfg.Data.SyllableFile)
	cfg.Data.HelpCodeFile = resolver.Resolve(cfg.Data.HelpCodeFile)
	cfg.Data.PhraseFile = resolver.Resolve(cfg.Data.PhraseFile)

	dict, err := bootstrap.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open dictionary: %v", err)
	}
	defer dict.Close()
	sess := bootstrap.NewSession(dict, cfg)

	if *cliMode {
		log.SetReportTimestamp(false)
		size := cfg.CLI.PageSize
		if *pageSize > 0 {
			size = *pageSize
		}
		inputHandler := cli.NewInputHandler(dict, sess, size, os.Stdin, os.Stdout)
		if err := inputHandler.Start(); err != nil {
			log.Errorf("CLI error: %v", err)
		}
		return
	}

	showStartupInfo(cfg)
	srv := server.NewServer(dict, sess, os.Stdin, os.Stdout)
	if err := srv.Start(); err != nil {
		log.Errorf("Server stopped: %v", err)
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ shuangpin ] Xiaohe double-pinyin candidates")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo prints basic info to stderr; stdout is reserved for IPC.
func showStartupInfo(cfg *config.Config) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, " shuangpin ")
	fmt.Fprintln(os.Stderr, "===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("store: ( %s, %s )", cfg.Data.StorageEngine, cfg.Data.DictPath)
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "===========")

	log.SetLevel(currentLevel)
}
