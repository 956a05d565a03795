// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

// Package snapshot persists build summaries so operators can compare the
// active model against the previous run after a restart.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// summaryKey is the BadgerDB key for the last build summary.
const summaryKey = "reviewrec:build:summary"

// BuildSummary captures the outcome of one model build.
type BuildSummary struct {
	SourcePath    string    `json:"source_path"`
	TotalReviews  int64     `json:"total_reviews"`
	TotalUsers    int       `json:"total_users"`
	TotalProducts int       `json:"total_products"`
	BuiltAt       time.Time `json:"built_at"`
	DurationMS    int64     `json:"duration_ms"`
}

// Store persists build summaries.
type Store interface {
	// Save persists the summary, replacing any previous one.
	Save(ctx context.Context, s *BuildSummary) error

	// Load retrieves the last saved summary. Returns nil, nil when none
	// has been saved.
	Load(ctx context.Context) (*BuildSummary, error)

	// Clear removes the saved summary.
	Clear(ctx context.Context) error
}

// BadgerStore implements Store on a BadgerDB instance. Summaries survive
// application restarts.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore creates a Store backed by the provided BadgerDB instance.
// The caller owns the database lifecycle.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Open opens (or creates) a BadgerDB at dir for snapshot storage. Badger's
// own logger is silenced; the application logs what matters.
func Open(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store %s: %w", dir, err)
	}
	return db, nil
}

// Save implements Store.
func (s *BadgerStore) Save(_ context.Context, summary *BuildSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(summaryKey), data)
	})
}

// Load implements Store.
func (s *BadgerStore) Load(_ context.Context) (*BuildSummary, error) {
	var summary BuildSummary

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(summaryKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &summary)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load summary: %w", err)
	}

	if summary.BuiltAt.IsZero() {
		return nil, nil
	}
	return &summary, nil
}

// Clear implements Store.
func (s *BadgerStore) Clear(_ context.Context) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(summaryKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// InMemoryStore implements Store in process memory, for tests and for runs
// with persistence disabled.
type InMemoryStore struct {
	summary *BuildSummary
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Save stores a copy of the summary.
func (s *InMemoryStore) Save(_ context.Context, summary *BuildSummary) error {
	cp := *summary
	s.summary = &cp
	return nil
}

// Load returns a copy of the stored summary, or nil, nil.
func (s *InMemoryStore) Load(_ context.Context) (*BuildSummary, error) {
	if s.summary == nil {
		return nil, nil
	}
	cp := *s.summary
	return &cp, nil
}

// Clear drops the stored summary.
func (s *InMemoryStore) Clear(_ context.Context) error {
	s.summary = nil
	return nil
}
