// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

// Package engine implements user-based collaborative filtering over the
// rating matrix produced by a single ingestion pass.
//
// # Architecture
//
// The engine is split into three pluggable, independently testable units
// rather than one monolithic recommender:
//
//   - SimilarityMetric: pairwise user similarity (Pearson correlation over
//     co-rated items)
//   - NeighborhoodStrategy: neighbor selection (similarity threshold with a
//     size cap)
//   - PredictionAggregator: per-item score prediction (similarity-weighted
//     average of neighbor ratings)
//
// A Model wires the three together with the identity registries and the
// rating store. Build performs the full single-threaded ingestion; the
// resulting Model is immutable and all query operations are side-effect
// free, so concurrent recommendation requests need no locking.
//
// # Determinism
//
// Same corpus, same results: neighborhoods break similarity ties by
// ascending user index and rankings break score ties by ascending item
// index, so output ordering never depends on map iteration order.
//
// # Usage
//
//	builder, _ := engine.NewBuilder(engine.DefaultConfig())
//	model, err := builder.Build(ctx, corpus)
//	if err != nil { ... }
//
//	recs, err := model.RecommendationsFor(ctx, "A3SGXH7AUHU8GW", 3)
package engine
