// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package identity

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a reverse lookup for an index that was never allocated.
var ErrNotFound = errors.New("identity: index not found")

// Registry assigns dense integer indices to external string identifiers in
// first-seen order. One Registry instance is kept per entity kind (users,
// products); the index counters are independent.
type Registry struct {
	forward map[string]int
	reverse []string
}

// NewRegistry creates an empty registry.
// sizeHint pre-sizes the internal maps; pass 0 when the corpus size is unknown.
func NewRegistry(sizeHint int) *Registry {
	return &Registry{
		forward: make(map[string]int, sizeHint),
		reverse: make([]string, 0, sizeHint),
	}
}

// Resolve returns the internal index for externalID, allocating the next
// index if the ID has not been seen before. Allocation order is strictly
// first-seen, starting at zero.
//
// Resolve mutates the registry and must only be called from the single
// ingestion goroutine.
func (r *Registry) Resolve(externalID string) int {
	if idx, ok := r.forward[externalID]; ok {
		return idx
	}
	idx := len(r.reverse)
	r.forward[externalID] = idx
	r.reverse = append(r.reverse, externalID)
	return idx
}

// Lookup returns the internal index for externalID without allocating.
// The second return value reports whether the ID was ever registered.
func (r *Registry) Lookup(externalID string) (int, bool) {
	idx, ok := r.forward[externalID]
	return idx, ok
}

// ReverseLookup returns the external ID for an internal index.
// It fails with ErrNotFound if the index was never allocated.
func (r *Registry) ReverseLookup(index int) (string, error) {
	if index < 0 || index >= len(r.reverse) {
		return "", fmt.Errorf("%w: %d", ErrNotFound, index)
	}
	return r.reverse[index], nil
}

// Len returns the number of allocated identities.
func (r *Registry) Len() int {
	return len(r.reverse)
}
