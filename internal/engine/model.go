// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/tomtom215/reviewrec/internal/identity"
	"github.com/tomtom215/reviewrec/internal/ratings"
)

// Recommendation is a single recommended product with its predicted score,
// expressed in external corpus identifiers.
type Recommendation struct {
	ProductID string  `json:"product_id"`
	Score     float64 `json:"score"`
}

// Model is an immutable recommendation model built from a review corpus.
// Once Build returns it, nothing mutates its state, so any number of
// goroutines may query it concurrently without locking.
type Model struct {
	users    *identity.Registry
	products *identity.Registry
	store    *ratings.Store

	strategy   NeighborhoodStrategy
	aggregator PredictionAggregator
	cfg        Config
}

// NewModel assembles a model from already-built components. Most callers
// should go through Builder; NewModel exists for custom strategies and
// aggregators.
func NewModel(users, products *identity.Registry, store *ratings.Store,
	strategy NeighborhoodStrategy, aggregator PredictionAggregator, cfg Config,
) *Model {
	return &Model{
		users:      users,
		products:   products,
		store:      store,
		strategy:   strategy,
		aggregator: aggregator,
		cfg:        cfg,
	}
}

// TotalReviews returns the number of reviews ingested, duplicates included.
func (m *Model) TotalReviews() int64 {
	return m.store.TotalRatings()
}

// TotalUsers returns the number of distinct reviewers seen.
func (m *Model) TotalUsers() int {
	return m.users.Len()
}

// TotalProducts returns the number of distinct products seen.
func (m *Model) TotalProducts() int {
	return m.products.Len()
}

// KnowsUser reports whether the external user identifier appeared in the
// corpus.
func (m *Model) KnowsUser(userID string) bool {
	_, ok := m.users.Lookup(userID)
	return ok
}

// RecommendationsFor returns up to topN recommended products for the given
// external user identifier, ordered by descending predicted score with ties
// broken by first-seen product order.
//
// topN values of zero or less fall back to the configured default; values
// above the configured maximum are clamped. An empty slice is a valid
// answer: the user exists but has no sufficiently similar peers, or their
// peers rated nothing new. ErrUnknownUser is returned for identifiers never
// seen in the corpus.
func (m *Model) RecommendationsFor(ctx context.Context, userID string, topN int) ([]Recommendation, error) {
	user, ok := m.users.Lookup(userID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUser, userID)
	}

	if topN <= 0 {
		topN = m.cfg.DefaultTopN
	}
	if topN > m.cfg.MaxTopN {
		topN = m.cfg.MaxTopN
	}

	neighbors, err := m.strategy.Neighbors(ctx, user, m.store)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		return []Recommendation{}, nil
	}

	scored := m.aggregator.Aggregate(user, neighbors, m.store)
	if len(scored) == 0 {
		return []Recommendation{}, nil
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Item < scored[j].Item
	})
	if len(scored) > topN {
		scored = scored[:topN]
	}

	out := make([]Recommendation, 0, len(scored))
	for _, s := range scored {
		productID, err := m.products.ReverseLookup(s.Item)
		if err != nil {
			return nil, fmt.Errorf("resolve product index %d: %w", s.Item, err)
		}
		out = append(out, Recommendation{ProductID: productID, Score: s.Score})
	}
	return out, nil
}
