// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reviewrec/internal/identity"
	"github.com/tomtom215/reviewrec/internal/ingest"
	"github.com/tomtom215/reviewrec/internal/logging"
	"github.com/tomtom215/reviewrec/internal/ratings"
)

// Builder assembles a Model from a review corpus stream. A Builder is
// single-use: Build consumes the input once and returns the finished
// model.
type Builder struct {
	cfg      Config
	log      zerolog.Logger
	progress ingest.ProgressFunc
}

// NewBuilder creates a Builder with the given configuration.
func NewBuilder(cfg Config) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	return &Builder{
		cfg: cfg,
		log: logging.With().Str("component", "engine").Logger(),
	}, nil
}

// WithProgress registers a callback invoked after every cfg.ProgressInterval
// ingested reviews, and once more at the end of the stream. The callback
// runs on the Build goroutine.
func (b *Builder) WithProgress(fn ingest.ProgressFunc) *Builder {
	b.progress = fn
	return b
}

// Build reads the corpus from r, which may be plain text or gzip-compressed,
// and returns the finished model. The input is a sequence of "key: value"
// lines; each completed (product, user, score) group becomes one rating.
//
// A malformed score line aborts the build with an *ingest.ParseError; a
// failed read aborts it with an error wrapping ingest.ErrRead. The context
// is checked between lines, so cancellation stops a long ingest promptly.
func (b *Builder) Build(ctx context.Context, r io.Reader) (*Model, error) {
	src, err := ingest.NewReader(r)
	if err != nil {
		return nil, err
	}

	users := identity.NewRegistry(0)
	products := identity.NewRegistry(0)
	store := ratings.NewStore(0)

	asm := ingest.NewAssembler(users, products)
	scanner := ingest.NewScanner(src)

	var reviews int64
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		triple, ok, err := asm.Consume(scanner.Text())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		store.Add(triple.User, triple.Product, triple.Score)
		reviews++
		if b.progress != nil && reviews%b.cfg.ProgressInterval == 0 {
			b.progress(reviews)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ingest.ErrRead, err)
	}
	if b.progress != nil && reviews%b.cfg.ProgressInterval != 0 {
		b.progress(reviews)
	}

	b.log.Info().
		Int64("reviews", reviews).
		Int("users", users.Len()).
		Int("products", products.Len()).
		Msg("Model built")

	metric := NewPearson(b.cfg.MinOverlap)
	return &Model{
		users:      users,
		products:   products,
		store:      store,
		strategy:   NewThresholdNeighborhood(metric, b.cfg.SimilarityThreshold, b.cfg.MaxNeighbors),
		aggregator: WeightedAverage{},
		cfg:        b.cfg,
	}, nil
}
