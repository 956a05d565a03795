// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

// Package main is the entry point for the Reviewrec server.
//
// Reviewrec ingests a product review corpus (plain text or gzip) at startup,
// builds an in-memory user-based collaborative filtering model, and serves
// recommendations over a REST API.
//
// # Startup sequence
//
//  1. Configuration: layered loading via Koanf v2 (defaults, YAML file,
//     environment variables)
//  2. Logging: zerolog, JSON by default
//  3. Model build: stream the corpus at ingest.corpus_path into the engine
//  4. Snapshot: persist the build summary to BadgerDB when enabled
//  5. HTTP server: Chi router with health, stats, recommendation, and
//     Prometheus metrics endpoints
//
// # Configuration
//
// Key environment variables (see internal/config for the full set):
//   - CORPUS_PATH: review corpus file, plain or gzip
//   - HTTP_PORT: listen port (default 8080)
//   - SIMILARITY_THRESHOLD, MAX_NEIGHBORS, DEFAULT_TOP_N: engine tuning
//   - SNAPSHOT_ENABLED, SNAPSHOT_PATH: build summary persistence
//
// # Signal handling
//
// SIGINT and SIGTERM trigger a graceful shutdown: the listener stops
// accepting connections and in-flight requests get the configured shutdown
// timeout to finish.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reviewrec/internal/api"
	"github.com/tomtom215/reviewrec/internal/config"
	"github.com/tomtom215/reviewrec/internal/engine"
	"github.com/tomtom215/reviewrec/internal/ingest"
	"github.com/tomtom215/reviewrec/internal/logging"
	"github.com/tomtom215/reviewrec/internal/metrics"
	"github.com/tomtom215/reviewrec/internal/snapshot"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("corpus_path", cfg.Ingest.CorpusPath).
		Int("port", cfg.Server.Port).
		Msg("Starting Reviewrec")

	if cfg.Ingest.CorpusPath == "" {
		logging.Fatal().Msg("CORPUS_PATH is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	model, summary, err := buildModel(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build model")
	}

	store, closeStore, err := openSnapshotStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open snapshot store")
	}
	defer closeStore()

	if previous, err := store.Load(ctx); err != nil {
		logging.Warn().Err(err).Msg("Could not load previous build summary")
	} else if previous != nil {
		logging.Info().
			Int64("previous_reviews", previous.TotalReviews).
			Int64("current_reviews", summary.TotalReviews).
			Time("previous_built_at", previous.BuiltAt).
			Msg("Previous build summary loaded")
	}
	if err := store.Save(ctx, summary); err != nil {
		logging.Warn().Err(err).Msg("Could not persist build summary")
	}

	middleware := api.NewMiddleware(&api.MiddlewareConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		RateLimitRequests:  cfg.Server.RateLimit,
		RateLimitWindow:    time.Minute,
	})
	router := api.NewRouter(api.NewHandler(model, summary), middleware)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// buildModel streams the corpus into a fresh model and publishes the build
// metrics.
func buildModel(ctx context.Context, cfg *config.Config) (*engine.Model, *snapshot.BuildSummary, error) {
	f, err := os.Open(cfg.Ingest.CorpusPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	builder, err := engine.NewBuilder(cfg.Engine)
	if err != nil {
		return nil, nil, err
	}
	builder.WithProgress(func(reviews int64) {
		logging.Info().Int64("reviews", reviews).Msg("Ingest progress")
	})

	start := time.Now()
	model, err := builder.Build(ctx, f)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordIngest(elapsed, 0, err)

		var perr *ingest.ParseError
		if errors.As(err, &perr) {
			logging.Error().
				Int64("line", perr.Line).
				Str("value", perr.Value).
				Msg("Corpus parse failure")
		}
		return nil, nil, err
	}

	metrics.RecordIngest(elapsed, model.TotalReviews(), nil)
	metrics.SetModelStats(model.TotalReviews(), model.TotalUsers(), model.TotalProducts())

	summary := &snapshot.BuildSummary{
		SourcePath:    cfg.Ingest.CorpusPath,
		TotalReviews:  model.TotalReviews(),
		TotalUsers:    model.TotalUsers(),
		TotalProducts: model.TotalProducts(),
		BuiltAt:       time.Now().UTC(),
		DurationMS:    elapsed.Milliseconds(),
	}
	return model, summary, nil
}

// openSnapshotStore returns the configured snapshot store and a close
// function. Persistence disabled means an in-memory store.
func openSnapshotStore(cfg *config.Config) (snapshot.Store, func(), error) {
	if !cfg.Snapshot.Enabled {
		return snapshot.NewInMemoryStore(), func() {}, nil
	}

	db, err := snapshot.Open(cfg.Snapshot.Path)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing snapshot store")
		}
	}
	return snapshot.NewBadgerStore(db), closeFn, nil
}
