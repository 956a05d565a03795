// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package engine

import (
	"fmt"

	"github.com/tomtom215/reviewrec/internal/ingest"
)

// Config contains the tunable parameters of the collaborative-filtering
// engine.
type Config struct {
	// SimilarityThreshold is the minimum (strict) similarity for a user to
	// enter a neighborhood. Default: 0.1.
	SimilarityThreshold float64 `json:"similarity_threshold" koanf:"similarity_threshold"`

	// MaxNeighbors caps the neighborhood size, keeping the highest
	// similarities. Default: 64.
	MaxNeighbors int `json:"max_neighbors" koanf:"max_neighbors"`

	// MinOverlap is the minimum number of co-rated items required for a
	// similarity to be defined at all. Below this the pair is treated as
	// unrelated. Default: 2.
	MinOverlap int `json:"min_overlap" koanf:"min_overlap"`

	// DefaultTopN is the number of recommendations returned when the caller
	// does not ask for a specific count. Default: 3.
	DefaultTopN int `json:"default_top_n" koanf:"default_top_n"`

	// MaxTopN is the maximum allowed recommendation count per query.
	// Default: 100.
	MaxTopN int `json:"max_top_n" koanf:"max_top_n"`

	// ProgressInterval is the number of complete reviews between progress
	// callbacks during a build. Default: 1000.
	ProgressInterval int64 `json:"progress_interval" koanf:"progress_interval"`
}

// DefaultConfig returns a Config with the reference defaults.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: 0.1,
		MaxNeighbors:        64,
		MinOverlap:          2,
		DefaultTopN:         3,
		MaxTopN:             100,
		ProgressInterval:    ingest.DefaultProgressInterval,
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.SimilarityThreshold < -1 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("engine.similarity_threshold must be in [-1, 1], got %f", c.SimilarityThreshold)
	}
	if c.MaxNeighbors < 1 {
		return fmt.Errorf("engine.max_neighbors must be positive, got %d", c.MaxNeighbors)
	}
	if c.MinOverlap < 2 {
		return fmt.Errorf("engine.min_overlap must be at least 2, got %d", c.MinOverlap)
	}
	if c.DefaultTopN < 1 {
		return fmt.Errorf("engine.default_top_n must be positive, got %d", c.DefaultTopN)
	}
	if c.MaxTopN < c.DefaultTopN {
		return fmt.Errorf("engine.max_top_n must be >= engine.default_top_n, got %d < %d", c.MaxTopN, c.DefaultTopN)
	}
	if c.ProgressInterval < 1 {
		return fmt.Errorf("engine.progress_interval must be positive, got %d", c.ProgressInterval)
	}
	return nil
}
