// Package main is the entry point for the Snipstorm editor.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dshills/snipstorm/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, logFile := parseFlags()

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		cfg.LogOutput = f
	} else {
		// The terminal is in raw mode while running; keep logs out of it.
		cfg.LogOutput = io.Discard
	}

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() (app.Config, string) {
	var cfg app.Config
	var logLevel string
	var logFile string
	var showVersion bool

	flag.StringVar(&cfg.SettingsPath, "settings", "", "Path to snippet settings file (.toml or .yaml)")
	flag.StringVar(&cfg.SettingsPath, "s", "", "Path to snippet settings file (shorthand)")
	flag.StringVar(&cfg.ScriptPath, "script", "", "Lua script providing additional snippets")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&logFile, "log-file", "", "Write logs to this file instead of discarding them")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Snipstorm - note editor with trigger-based snippet expansion\n\n")
		fmt.Fprintf(os.Stderr, "Usage: snipstorm [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  snipstorm                          Open with empty buffer\n")
		fmt.Fprintf(os.Stderr, "  snipstorm notes.txt                Open a file\n")
		fmt.Fprintf(os.Stderr, "  snipstorm -s snippets.toml         Load snippet settings\n")
		fmt.Fprintf(os.Stderr, "  snipstorm -script extra.lua notes  Load scripted snippets\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Snipstorm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", logLevel)
		os.Exit(1)
	}
	cfg.LogLevel = app.ParseLogLevel(logLevel)

	if args := flag.Args(); len(args) > 0 {
		if abs, err := filepath.Abs(args[0]); err == nil {
			cfg.FilePath = abs
		} else {
			cfg.FilePath = args[0]
		}
	}

	return cfg, logFile
}
