// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

// Package ingest converts raw review-log lines into complete rating triples.
//
// The corpus format interleaves many record types; only three line forms
// matter here, in `key: value` shape:
//
//	product/productId: B001E4KFG0
//	review/userId: A3SGXH7AUHU8GW
//	review/score: 5.0
//
// The Assembler is a small state machine with a 3-bit completion mask. It
// stages the three fields of one review in whatever order they arrive and
// emits a complete triple once all three are present, then resets. Lines
// that match no recognized prefix, or are shorter than the shortest prefix,
// are skipped without touching assembler state.
//
// A malformed score aborts the whole build with *ParseError: ingestion is
// all-or-nothing, since a partially built model is unsafe to serve. Stream
// failures surface as errors wrapping ErrRead.
//
// NewReader provides transparent gzip decompression, since review corpora
// are commonly distributed as .txt.gz.
package ingest
