// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package ratings

// Rating is one observed (item, score) pair inside a user's row. Item is the
// dense product index assigned by the identity registry.
type Rating struct {
	Item  int32
	Score float64
}

// Store is the sparse rating matrix. Rows are keyed by dense user index and
// created lazily on the first rating for that user, so an existing row is
// never empty.
//
// Duplicate (user, item) observations within one ingestion pass are appended
// rather than overwritten, preserving the input as observed.
type Store struct {
	rows      [][]Rating
	itemUsers map[int32][]int32
	total     int64
	userCount int
}

// NewStore creates an empty store. userHint pre-sizes the row table; pass 0
// when the corpus size is unknown.
func NewStore(userHint int) *Store {
	return &Store{
		rows:      make([][]Rating, 0, userHint),
		itemUsers: make(map[int32][]int32),
	}
}

// Add appends a rating to the user's row, creating the row if absent.
// O(1) amortized. Must only be called from the single ingestion goroutine.
func (s *Store) Add(user, item int, score float64) {
	for user >= len(s.rows) {
		s.rows = append(s.rows, nil)
	}
	if len(s.rows[user]) == 0 {
		s.userCount++
	}
	s.rows[user] = append(s.rows[user], Rating{Item: int32(item), Score: score})

	// Skip the inverted-index append when the same user re-rates the item
	// back to back; remaining duplicates are deduplicated at query time.
	users := s.itemUsers[int32(item)]
	if n := len(users); n == 0 || users[n-1] != int32(user) {
		s.itemUsers[int32(item)] = append(users, int32(user))
	}

	s.total++
}

// RatingsOf returns the user's row. Unknown users yield an empty row, not
// an error. The returned slice is owned by the store and must not be
// mutated by callers.
func (s *Store) RatingsOf(user int) []Rating {
	if user < 0 || user >= len(s.rows) {
		return nil
	}
	return s.rows[user]
}

// UsersOf returns the dense indices of users that rated item, in first-rated
// order. The returned slice is owned by the store; it may contain a user
// more than once when that user rated the item more than once.
func (s *Store) UsersOf(item int) []int32 {
	return s.itemUsers[int32(item)]
}

// TotalRatings returns the number of ratings appended so far.
func (s *Store) TotalRatings() int64 {
	return s.total
}

// UserCount returns the number of users with at least one rating.
func (s *Store) UserCount() int {
	return s.userCount
}

// ItemCount returns the number of distinct items with at least one rating.
func (s *Store) ItemCount() int {
	return len(s.itemUsers)
}
