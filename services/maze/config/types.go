// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads and validates the maze tool configuration.
//
// Configuration is YAML. Missing files fall back to Default, and a small
// set of environment variables override file values. CLI flags are applied
// by the caller after Load.
package config

import "errors"

// CurrentConfigVersion is written into new config files.
const CurrentConfigVersion = "1"

// Environment variables that override file values.
const (
	EnvAlgorithm = "MAZE_ALGORITHM"
	EnvHeuristic = "MAZE_HEURISTIC"
	EnvLogLevel  = "MAZE_LOG_LEVEL"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full tool configuration.
type Config struct {
	Meta      MetaConfig      `yaml:"meta"`
	Search    SearchConfig    `yaml:"search"`
	Render    RenderConfig    `yaml:"render"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Server    ServerConfig    `yaml:"server"`
	Batch     BatchConfig     `yaml:"batch"`
}

type MetaConfig struct {
	Version string `yaml:"version"`
}

type SearchConfig struct {
	Algorithm string `yaml:"algorithm" validate:"oneof=astar dfs"`
	Heuristic string `yaml:"heuristic" validate:"oneof=manhattan euclidean"`
}

type RenderConfig struct {
	Mode         string `yaml:"mode" validate:"oneof=color plain"`
	ShowExplored bool   `yaml:"show_explored"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `yaml:"json"`
	Dir   string `yaml:"dir,omitempty"` // empty disables the file sink
}

type TelemetryConfig struct {
	TraceExporter  string `yaml:"trace_exporter" validate:"oneof=none stdout otlp"`
	MetricExporter string `yaml:"metric_exporter" validate:"oneof=none stdout prometheus"`
	OTLPEndpoint   string `yaml:"otlp_endpoint,omitempty" validate:"required_if=TraceExporter otlp"`
}

type ServerConfig struct {
	Port         int   `yaml:"port" validate:"min=1,max=65535"`
	MaxMazeBytes int64 `yaml:"max_maze_bytes" validate:"min=16,max=67108864"`
}

type BatchConfig struct {
	MaxConcurrency int `yaml:"max_concurrency" validate:"min=1,max=256"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Meta: MetaConfig{Version: CurrentConfigVersion},
		Search: SearchConfig{
			Algorithm: "astar",
			Heuristic: "manhattan",
		},
		Render: RenderConfig{
			Mode:         "color",
			ShowExplored: true,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		Telemetry: TelemetryConfig{
			TraceExporter:  "none",
			MetricExporter: "prometheus",
		},
		Server: ServerConfig{
			Port:         8090,
			MaxMazeBytes: 8 << 20,
		},
		Batch: BatchConfig{
			MaxConcurrency: 4,
		},
	}
}
