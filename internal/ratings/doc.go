// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

// Package ratings holds the sparse, row-major rating matrix built during
// ingestion: one row of (item, score) pairs per user, plus an inverted
// item-to-users index used to restrict neighborhood candidates to users
// with at least one co-rated item.
//
// The store is append-only while the model is being built and strictly
// read-only afterward, so the query phase needs no locking.
package ratings
