// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianMaze/pkg/logging"
	"github.com/AleutianAI/AleutianMaze/pkg/ux"
	"github.com/AleutianAI/AleutianMaze/services/maze/config"
	"github.com/AleutianAI/AleutianMaze/services/maze/telemetry"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

// --- Global Command Variables ---
var (
	configPath       string
	logLevel         string
	personalityLevel string

	cfg               config.Config
	logger            *logging.Logger
	telemetryShutdown func(context.Context) error

	rootCmd = &cobra.Command{
		Use:           "maze",
		Short:         "Solve grid mazes with A* or depth-first search",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if personalityLevel != "" {
				level, err := ux.ParsePersonalityLevel(personalityLevel)
				if err != nil {
					return &exitError{code: exitFailure, msg: err.Error(), err: err}
				}
				ux.SetPersonalityLevel(level)
			} else {
				ux.InitPersonality()
			}
			return setup(cmd.Context())
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.aleutian/maze.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&personalityLevel, "personality", "", "output style: full, standard, minimal, machine")

	rootCmd.AddCommand(solveCmd, batchCmd, serveCmd, configCmd)
}

// setup loads configuration, then starts logging and telemetry.
func setup(ctx context.Context) error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}

	loaded, err := config.Load(path)
	if err != nil {
		return &exitError{code: exitFailure, msg: err.Error(), err: err}
	}
	if logLevel != "" {
		loaded.Logging.Level = logLevel
	}
	cfg = loaded

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return &exitError{code: exitFailure, msg: err.Error(), err: err}
	}
	logger = logging.New(logging.Config{
		Level:   level,
		JSON:    cfg.Logging.JSON,
		LogDir:  cfg.Logging.Dir,
		Service: "maze",
	})
	logger.SetDefault()

	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := telemetry.Init(ctx, telemetry.FromConfig(cfg.Telemetry))
	if err != nil {
		return &exitError{code: exitFailure, msg: fmt.Sprintf("init telemetry: %v", err), err: err}
	}
	telemetryShutdown = shutdown

	slog.Debug("maze configuration loaded",
		slog.String("path", path),
		slog.String("algorithm", cfg.Search.Algorithm),
		slog.String("heuristic", cfg.Search.Heuristic),
	)
	return nil
}

// teardown flushes telemetry and closes the logger.
func teardown() {
	if telemetryShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := telemetryShutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "telemetry shutdown: %v\n", err)
		}
		cancel()
	}
	if logger != nil {
		_ = logger.Close()
	}
}
