// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package engine

import (
	"context"
	"sort"

	"github.com/tomtom215/reviewrec/internal/ratings"
)

// Neighbor is a user judged similar to the target, with the similarity that
// qualified them.
type Neighbor struct {
	User       int
	Similarity float64
}

// NeighborhoodStrategy selects the set of neighbors whose ratings inform
// predictions for a target user.
type NeighborhoodStrategy interface {
	// Name returns the strategy identifier (e.g. "threshold").
	Name() string

	// Neighbors returns the target's neighborhood, ordered by descending
	// similarity with ties broken by ascending user index. An empty slice
	// is a valid result: the target has no sufficiently similar peers.
	Neighbors(ctx context.Context, user int, store *ratings.Store) ([]Neighbor, error)
}

// ThresholdNeighborhood admits every candidate whose similarity to the
// target is strictly greater than Threshold, then keeps at most MaxSize of
// them, preferring higher similarity.
//
// Candidates are users who co-rated at least one item with the target,
// gathered through the store's item index; users with zero overlap can
// never have a defined similarity, so scanning the full population would
// be wasted work.
type ThresholdNeighborhood struct {
	Metric    SimilarityMetric
	Threshold float64
	MaxSize   int
}

// NewThresholdNeighborhood creates the threshold strategy. A MaxSize of
// zero or less means unbounded.
func NewThresholdNeighborhood(metric SimilarityMetric, threshold float64, maxSize int) *ThresholdNeighborhood {
	return &ThresholdNeighborhood{
		Metric:    metric,
		Threshold: threshold,
		MaxSize:   maxSize,
	}
}

// Name returns the strategy identifier.
func (t *ThresholdNeighborhood) Name() string {
	return "threshold"
}

// Neighbors implements NeighborhoodStrategy. It checks ctx between
// per-candidate similarity computations, so a cancelled request stops
// promptly even over a large candidate set.
func (t *ThresholdNeighborhood) Neighbors(ctx context.Context, user int, store *ratings.Store) ([]Neighbor, error) {
	target := store.RatingsOf(user)
	if len(target) == 0 {
		return []Neighbor{}, nil
	}

	candidates := t.candidates(user, target, store)

	neighbors := make([]Neighbor, 0, len(candidates))
	for _, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sim, ok := t.Metric.Similarity(target, store.RatingsOf(cand))
		if !ok || sim <= t.Threshold {
			continue
		}
		neighbors = append(neighbors, Neighbor{User: cand, Similarity: sim})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		if neighbors[i].Similarity != neighbors[j].Similarity {
			return neighbors[i].Similarity > neighbors[j].Similarity
		}
		return neighbors[i].User < neighbors[j].User
	})

	if t.MaxSize > 0 && len(neighbors) > t.MaxSize {
		neighbors = neighbors[:t.MaxSize]
	}
	return neighbors, nil
}

// candidates returns, in ascending user index order, every user other than
// the target who rated at least one of the target's items.
func (t *ThresholdNeighborhood) candidates(user int, target []ratings.Rating, store *ratings.Store) []int {
	seen := make(map[int32]struct{})
	for _, r := range target {
		for _, u := range store.UsersOf(int(r.Item)) {
			if int(u) == user {
				continue
			}
			seen[u] = struct{}{}
		}
	}

	out := make([]int, 0, len(seen))
	for u := range seen {
		out = append(out, int(u))
	}
	sort.Ints(out)
	return out
}
