// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

// Package config loads and validates the Reviewrec configuration from
// layered sources: built-in defaults, an optional YAML file, and
// environment variables, in ascending precedence.
package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/reviewrec/internal/engine"
)

// ConfigPathEnvVar names the environment variable that overrides config
// file discovery.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"reviewrec.yaml",
	"config/reviewrec.yaml",
	"/etc/reviewrec/config.yaml",
}

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
	Engine   engine.Config  `koanf:"engine"`
	Ingest   IngestConfig   `koanf:"ingest"`
	Snapshot SnapshotConfig `koanf:"snapshot"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port" validate:"min=1,max=65535"`

	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RateLimit is the per-client request budget per minute. Zero disables
	// rate limiting.
	RateLimit int `koanf:"rate_limit" validate:"min=0"`

	// CORSOrigins lists allowed cross-origin request origins. Empty
	// disables CORS handling.
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// IngestConfig holds corpus ingestion settings.
type IngestConfig struct {
	// CorpusPath points at the review corpus file, plain text or gzip.
	CorpusPath string `koanf:"corpus_path"`
}

// SnapshotConfig holds build-summary persistence settings.
type SnapshotConfig struct {
	// Enabled turns on persistence of build summaries across restarts.
	Enabled bool `koanf:"enabled"`

	// Path is the Badger database directory.
	Path string `koanf:"path"`
}

// defaultConfig returns the built-in defaults, the lowest-precedence layer.
func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			RateLimit:       300,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Engine: engine.DefaultConfig(),
		Snapshot: SnapshotConfig{
			Enabled: false,
			Path:    "data/snapshot",
		},
	}
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if c.Snapshot.Enabled && c.Snapshot.Path == "" {
		return fmt.Errorf("snapshot.path is required when snapshot.enabled is set")
	}
	return nil
}
