// Package main is the entry point for the GitHub user search server.
//
// main only reads configuration, builds the logger, makes sure the data
// directory exists, and hands over to internal/server. Everything else
// lives in importable packages so it can be tested.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hamzaabialal/github-clone/internal/config"
	"github.com/hamzaabialal/github-clone/internal/server"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to a YAML config file")
	flag.Parse()

	// === 1. CONFIGURATION ===
	// Defaults, then the optional YAML file, then environment variables.
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 2. LOGGING ===
	// Validate already rejected unknown level names.
	level, _ := config.ParseLevel(cfg.Log.Level)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// === 3. FILE PATHS ===
	// Relative paths are resolved against the working directory, which is
	// the project root under `go run ./cmd/server`.
	if abs, err := filepath.Abs(cfg.Server.TemplateDir); err == nil {
		cfg.Server.TemplateDir = abs
	}
	if abs, err := filepath.Abs(cfg.Server.StaticDir); err == nil {
		cfg.Server.StaticDir = abs
	}

	if cfg.Storage.DBPath != ":memory:" {
		dbDir := filepath.Dir(cfg.Storage.DBPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	if cfg.GitHub.Token == "" {
		logger.Warn("GITHUB_TOKEN not set, GitHub allows 60 unauthenticated requests per hour")
	}

	// === 4. SERVE ===
	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
