// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package engine

import (
	"math"

	"github.com/tomtom215/reviewrec/internal/ratings"
)

// ScoredItem is an item with a predicted preference score.
type ScoredItem struct {
	Item  int
	Score float64
}

// PredictionAggregator turns a neighborhood into predicted scores for items
// the target user has not rated.
type PredictionAggregator interface {
	// Name returns the aggregator identifier (e.g. "weighted-average").
	Name() string

	// Aggregate returns predicted scores for every candidate item, in no
	// particular order. Items the target already rated are excluded.
	Aggregate(user int, neighbors []Neighbor, store *ratings.Store) []ScoredItem
}

// WeightedAverage predicts each candidate item's score as the
// similarity-weighted average of neighbor ratings:
//
//	predicted = Σ(sim_n · rating_n) / Σ|sim_n|
//
// summed over the neighbors who rated the item. Items whose weight sum is
// zero are dropped: there is no signal to normalize.
type WeightedAverage struct{}

// Name returns the aggregator identifier.
func (WeightedAverage) Name() string {
	return "weighted-average"
}

// Aggregate implements PredictionAggregator. Neighbors contribute in the
// order given; since the neighborhood is deterministically ordered, the
// accumulated sums are reproducible run to run.
func (WeightedAverage) Aggregate(user int, neighbors []Neighbor, store *ratings.Store) []ScoredItem {
	if len(neighbors) == 0 {
		return nil
	}

	rated := make(map[int32]struct{})
	for _, r := range store.RatingsOf(user) {
		rated[r.Item] = struct{}{}
	}

	type accum struct {
		num, den float64
	}
	sums := make(map[int32]*accum)
	order := make([]int32, 0, 64)

	for _, n := range neighbors {
		for _, r := range store.RatingsOf(n.User) {
			if _, ok := rated[r.Item]; ok {
				continue
			}
			acc, ok := sums[r.Item]
			if !ok {
				acc = &accum{}
				sums[r.Item] = acc
				order = append(order, r.Item)
			}
			acc.num += n.Similarity * r.Score
			acc.den += math.Abs(n.Similarity)
		}
	}

	out := make([]ScoredItem, 0, len(order))
	for _, item := range order {
		acc := sums[item]
		if acc.den == 0 {
			continue
		}
		out = append(out, ScoredItem{Item: int(item), Score: acc.num / acc.den})
	}
	return out
}
