// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package ingest

import (
	"strconv"
	"strings"

	"github.com/tomtom215/reviewrec/internal/identity"
)

// Recognized field prefixes, `key: value` form.
const (
	prefixProduct = "product/productId:"
	prefixUser    = "review/userId:"
	prefixScore   = "review/score:"
)

// minLineLen is the length of the shortest recognized prefix; shorter lines
// cannot match anything and are skipped without inspection.
const minLineLen = len(prefixScore)

// Completion mask bits, one per staged field.
const (
	maskProduct = 1 << iota
	maskUser
	maskScore

	maskComplete = maskProduct | maskUser | maskScore
)

// Triple is one complete (user, product, score) observation with identities
// already resolved to dense indices.
type Triple struct {
	User    int
	Product int
	Score   float64
}

// Assembler accumulates the three fields of one review across consecutive
// input lines, tolerating any field order within a group. It owns no global
// state: each Assembler is an independent, resettable value.
type Assembler struct {
	users    *identity.Registry
	products *identity.Registry

	mask    uint8
	user    int
	product int
	score   float64
	line    int64
}

// NewAssembler creates an assembler that resolves external IDs through the
// given registries. The registries are shared with the caller; the assembler
// is their only writer during a build.
func NewAssembler(users, products *identity.Registry) *Assembler {
	return &Assembler{users: users, products: products}
}

// Consume processes one input line. When the line completes a review group
// it returns the emitted triple with ok=true and resets the staging state.
// Unrecognized lines are skipped without affecting state.
//
// A malformed score value returns a *ParseError and leaves the assembler
// unusable for the current build.
func (a *Assembler) Consume(line string) (Triple, bool, error) {
	a.line++

	if len(line) < minLineLen {
		return Triple{}, false, nil
	}

	switch {
	case strings.HasPrefix(line, prefixProduct):
		a.product = a.products.Resolve(fieldValue(line, prefixProduct))
		a.mask |= maskProduct

	case strings.HasPrefix(line, prefixUser):
		a.user = a.users.Resolve(fieldValue(line, prefixUser))
		a.mask |= maskUser

	case strings.HasPrefix(line, prefixScore):
		raw := fieldValue(line, prefixScore)
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Triple{}, false, &ParseError{Line: a.line, Value: raw, Err: err}
		}
		a.score = score
		a.mask |= maskScore

	default:
		return Triple{}, false, nil
	}

	if a.mask != maskComplete {
		return Triple{}, false, nil
	}

	t := Triple{User: a.user, Product: a.product, Score: a.score}
	a.Reset()
	return t, true, nil
}

// Reset clears the staged fields and completion mask, ready for the next
// review group. Line numbering continues across resets.
func (a *Assembler) Reset() {
	a.mask = 0
	a.user = 0
	a.product = 0
	a.score = 0
}

// Line returns the number of lines consumed so far.
func (a *Assembler) Line() int64 {
	return a.line
}

// fieldValue extracts the value part of a recognized `key: value` line.
func fieldValue(line, prefix string) string {
	return strings.TrimSpace(line[len(prefix):])
}
