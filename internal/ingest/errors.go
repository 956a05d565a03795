// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package ingest

import (
	"errors"
	"fmt"
)

// ErrRead indicates a stream/read failure during ingestion. Errors returned
// by the build wrap ErrRead together with the underlying I/O cause.
var ErrRead = errors.New("ingest: read input")

// ParseError indicates a malformed score value. It is fatal: the build is
// aborted rather than recovered, because a partially ingested corpus would
// produce a model that silently under-counts reviews.
type ParseError struct {
	// Line is the 1-based line number of the offending record.
	Line int64

	// Value is the raw score text that failed to parse.
	Value string

	// Err is the underlying strconv error.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ingest: line %d: malformed score %q: %v", e.Line, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
