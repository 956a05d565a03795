// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package engine

import (
	"math"
	"sort"

	"github.com/tomtom215/reviewrec/internal/ratings"
)

// SimilarityMetric computes a symmetric similarity score between two users'
// rating rows. The second return value reports whether the similarity is
// defined; an undefined similarity means "no relation" and never enters a
// neighborhood.
type SimilarityMetric interface {
	// Name returns the metric identifier (e.g. "pearson").
	Name() string

	// Similarity computes the score for two rating rows. Implementations
	// must be symmetric: Similarity(a, b) == Similarity(b, a).
	Similarity(a, b []ratings.Rating) (float64, bool)
}

// Pearson computes the Pearson correlation coefficient over the co-rated
// item intersection of two users, in [-1, 1].
//
// The similarity is undefined when the intersection holds fewer than
// MinOverlap items, or when either user's ratings are constant over the
// intersection (zero variance).
type Pearson struct {
	// MinOverlap is the minimum co-rated item count. Values below 2 are
	// lifted to 2, since correlation over fewer points is meaningless.
	MinOverlap int
}

// NewPearson creates the Pearson metric with the given minimum overlap.
func NewPearson(minOverlap int) *Pearson {
	if minOverlap < 2 {
		minOverlap = 2
	}
	return &Pearson{MinOverlap: minOverlap}
}

// Name returns the metric identifier.
func (p *Pearson) Name() string {
	return "pearson"
}

type ratingPair struct {
	item int32
	a, b float64
}

// Similarity implements SimilarityMetric.
//
// When a row holds duplicate observations for the same item, the last one
// wins for the purpose of pairing: the rating store preserves duplicates as
// observed but a correlation needs one value per item. Accumulation runs in
// ascending item order so the result is identical regardless of argument
// order or row layout.
func (p *Pearson) Similarity(a, b []ratings.Rating) (float64, bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}

	scoresA := make(map[int32]float64, len(a))
	for _, r := range a {
		scoresA[r.Item] = r.Score
	}
	scoresB := make(map[int32]float64, len(b))
	for _, r := range b {
		scoresB[r.Item] = r.Score
	}

	small, large := scoresA, scoresB
	if len(scoresB) < len(scoresA) {
		small, large = scoresB, scoresA
	}

	pairs := make([]ratingPair, 0, len(small))
	for item := range small {
		if _, ok := large[item]; ok {
			pairs = append(pairs, ratingPair{item: item, a: scoresA[item], b: scoresB[item]})
		}
	}

	n := len(pairs)
	if n < p.MinOverlap {
		return 0, false
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].item < pairs[j].item })

	var sumA, sumB float64
	for _, pr := range pairs {
		sumA += pr.a
		sumB += pr.b
	}
	meanA := sumA / float64(n)
	meanB := sumB / float64(n)

	var cov, varA, varB float64
	for _, pr := range pairs {
		da := pr.a - meanA
		db := pr.b - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		return 0, false
	}

	sim := cov / (math.Sqrt(varA) * math.Sqrt(varB))

	// Floating-point rounding can push the ratio marginally outside [-1, 1].
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}
	return sim, true
}
