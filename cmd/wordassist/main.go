// Copyright 2025 The WordAssist Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the content assist server, CLI [DBG] and terminal
editor.

Note: This is a BETA release. APIs and functionality may rapidly change.

WordAssist proposes dictionary words that complete the word at the caret.
Proposals carry the span they replace and where the caret lands afterwards,
so a client can apply them without knowing how words are delimited.

# Usage

Start the msgpack server with a word list:

	wordassist -words /usr/share/dict/words

Try proposals from the command line, '|' marks the caret:

	wordassist -c -words words.txt
	> The ca|t

Edit text in the terminal with the popup:

	wordassist -t -words words.toml

Word lists are plain text (one word per line, an optional tab separated
detail), TOML (words = [...] or [[entry]] tables) or msgpack (an array of
strings or {w, d} maps). The format follows the file extension.

# Configuration

Runtime configuration is managed through a TOML file:

	[assist]
	visible_item_count = 10
	hover_lock_ms = 100
	hide_delay_ms = 200

	[dict]
	path = ""
	max_words = 50000

	[server]
	max_limit = 64
	max_buffer = 1048576
	reload_every = 1000

	[cli]
	default_limit = 24

The config file is automatically created with defaults if it doesn't exist.
Server mode reloads configuration periodically without restart.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout, see package
server. Logs go to stderr.

# Command Line Flags

	-words string
	    Word list file (overrides dict.path)
	-config string
	    Config file (default [UserConfigDir]/wordassist/config.toml)
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-t  Run the terminal editor
	-limit int
	    Number of proposals to print in CLI mode
	-max-words int
	    Maximum words to load (0 for all words)
	-reset-config
	    Rewrite the default config file with defaults
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

	"github.com/bastiangx/wordassist/internal/cli"
	"github.com/bastiangx/wordassist/internal/logger"
	"github.com/bastiangx/wordassist/internal/term"
	"github.com/bastiangx/wordassist/internal/utils"
	"github.com/bastiangx/wordassist/pkg/assist"
	"github.com/bastiangx/wordassist/pkg/config"
	"github.com/bastiangx/wordassist/pkg/dictionary"
	"github.com/bastiangx/wordassist/pkg/server"
	"github.com/bastiangx/wordassist/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
)

const (
	Version = "0.1.0-beta"
	AppName = "wordassist"
	gh      = "https://github.com/bastiangx/wordassist"
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

// main only manages the flow between the packages.
func main() {
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	wordsPath := flag.String("words", "", "Word list file (.txt, .toml, .msgpack), overrides dict.path")
	configPath := flag.String("config", "", "Path to config.toml")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	termMode := flag.Bool("t", false, "Run the terminal editor")
	limit := flag.Int("limit", 0, fmt.Sprintf("Number of proposals to print in CLI mode (default from config, %d)", defaultConfig.CLI.DefaultLimit))
	maxWords := flag.Int("max-words", -1, "Maximum number of words to load (use 0 for all words, default from config)")
	resetConfig := flag.Bool("reset-config", false, "Rewrite the default config.toml with default values")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *resetConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Info("Config rebuilt with defaults")
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	if *maxWords >= 0 {
		cfg.Dict.MaxWords = *maxWords
	}
	if *wordsPath != "" {
		cfg.Dict.Path = *wordsPath
	}

	entries := loadEntries(cfg, activePath)
	log.Debugf("Loaded %s words", utils.FormatWithCommas(len(entries)))

	switch {
	case *termMode:
		runTerminal(cfg, entries)
	case *cliMode:
		log.SetReportTimestamp(false)
		cliLimit := cfg.CLI.DefaultLimit
		if *limit > 0 {
			cliLimit = *limit
		}
		processor := &suggest.WordProcessor{}
		processor.SetEntries(entries)
		sigHandler()
		if err := cli.NewInputHandler(processor, cliLimit, os.Stdin, os.Stdout).Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
	default:
		processor := &suggest.WordProcessor{}
		processor.SetEntries(entries)
		sigHandler()
		showStartupInfo(cfg, len(entries))
		if err := server.NewServer(processor, cfg, activePath).Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}
}

// loadEntries reads the configured word list. A missing or unreadable list
// leaves the dictionary empty; words can still be sent over IPC.
func loadEntries(cfg *config.Config, activeConfigPath string) []dictionary.Entry {
	dlog := logger.Default("dict")
	if cfg.Dict.Path == "" {
		dlog.Warn("No word list configured, running with empty dict...")
		return nil
	}

	configDir := ""
	if activeConfigPath != "" {
		configDir = filepath.Dir(activeConfigPath)
	}
	resolver, err := utils.NewPathResolver(configDir)
	if err != nil {
		dlog.Errorf("Failed to initialize path resolver: %v", err)
		return nil
	}
	path, err := resolver.ResolveFile(cfg.Dict.Path)
	if err != nil {
		dlog.Errorf("Word list not found: %v", err)
		dlog.Debug("Path resolution", "info", resolver.RuntimeInfo())
		return nil
	}

	entries, err := dictionary.LoadFile(path)
	if err != nil {
		dlog.Errorf("Failed to load word list: %v", err)
		return nil
	}
	return dictionary.Truncate(entries, cfg.Dict.MaxWords)
}

func runTerminal(cfg *config.Config, entries []dictionary.Entry) {
	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}
	defer screen.Fini()

	editor, err := term.New(screen, entries, assist.OptionsFromConfig(cfg))
	if err != nil {
		screen.Fini()
		log.Fatalf("Failed to start editor: %v", err)
	}
	if err := editor.Run(); err != nil {
		screen.Fini()
		log.Fatalf("Editor error: %v", err)
	}
}

func printVersion() {
	banner := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ WordAssist ] Content assist proposals for any text surface")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(cfg *config.Config, words int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("%s %s", AppName, Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("words: %s (max %d)", utils.FormatWithCommas(words), cfg.Dict.MaxWords)
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
