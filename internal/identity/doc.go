// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

// Package identity maps opaque external string identifiers (user IDs,
// product IDs as they appear in raw review logs) to dense integer indices
// used by every downstream structure.
//
// A Registry is a bijection: the forward map and the reverse slice are
// updated together on every insert, so no two external IDs ever share an
// index and no index ever maps to two external IDs. Indices are allocated
// in strict first-seen order starting at zero and are never reused or
// removed for the lifetime of an ingestion pass.
//
// # Thread Safety
//
// A Registry is single-writer during ingestion. Once ingestion completes it
// becomes read-only and is safe for concurrent readers without locking.
package identity
