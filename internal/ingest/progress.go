// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package ingest

// ProgressFunc is invoked during a build every progress interval, with the
// number of complete reviews emitted so far. It runs on the ingestion
// goroutine, so implementations should return quickly.
//
// Progress reporting is a caller concern: the core never prints. Typical
// callers log or update a gauge.
type ProgressFunc func(reviews int64)

// DefaultProgressInterval matches the reference behavior of reporting every
// thousandth complete review.
const DefaultProgressInterval = 1000
