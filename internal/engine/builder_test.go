// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package engine

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/tomtom215/reviewrec/internal/ingest"
)

// sampleCorpus holds three users: U0 and U1 agree on P0/P1, U1 also rated
// P2, and U2 rated only P3 so nobody overlaps with them.
const sampleCorpus = `product/productId: P0
review/userId: U0
review/score: 5.0
product/productId: P1
review/userId: U0
review/score: 3.0
product/productId: P0
review/userId: U1
review/score: 5.0
product/productId: P1
review/userId: U1
review/score: 3.0
product/productId: P2
review/userId: U1
review/score: 4.0
product/productId: P3
review/userId: U2
review/score: 2.0
`

func buildSample(t *testing.T, cfg Config) *Model {
	t.Helper()
	b, err := NewBuilder(cfg)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	m, err := b.Build(context.Background(), strings.NewReader(sampleCorpus))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return m
}

func TestBuildTotals(t *testing.T) {
	m := buildSample(t, DefaultConfig())
	if got := m.TotalReviews(); got != 6 {
		t.Errorf("TotalReviews = %d, want 6", got)
	}
	if got := m.TotalUsers(); got != 3 {
		t.Errorf("TotalUsers = %d, want 3", got)
	}
	if got := m.TotalProducts(); got != 4 {
		t.Errorf("TotalProducts = %d, want 4", got)
	}
}

func TestBuildSmallCorpusTotals(t *testing.T) {
	const corpus = `product/productId: A
review/userId: alice
review/score: 4.0
product/productId: B
review/userId: alice
review/score: 2.0
product/productId: A
review/userId: bob
review/score: 5.0
`
	b, err := NewBuilder(DefaultConfig())
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	m, err := b.Build(context.Background(), strings.NewReader(corpus))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := m.TotalReviews(); got != 3 {
		t.Errorf("TotalReviews = %d, want 3", got)
	}
	if got := m.TotalUsers(); got != 2 {
		t.Errorf("TotalUsers = %d, want 2", got)
	}
	if got := m.TotalProducts(); got != 2 {
		t.Errorf("TotalProducts = %d, want 2", got)
	}
}

func TestBuildGzipInput(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(sampleCorpus)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}

	b, err := NewBuilder(DefaultConfig())
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	m, err := b.Build(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := m.TotalReviews(); got != 6 {
		t.Errorf("TotalReviews = %d, want 6", got)
	}
}

func TestBuildMalformedScore(t *testing.T) {
	corpus := "product/productId: P0\nreview/userId: U0\nreview/score: five stars\n"
	b, err := NewBuilder(DefaultConfig())
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	_, err = b.Build(context.Background(), strings.NewReader(corpus))

	var perr *ingest.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ingest.ParseError", err)
	}
	if perr.Line != 3 {
		t.Errorf("Line = %d, want 3", perr.Line)
	}
	if perr.Value != "five stars" {
		t.Errorf("Value = %q, want %q", perr.Value, "five stars")
	}
}

type flakyReader struct {
	data io.Reader
	err  error
}

func (f *flakyReader) Read(p []byte) (int, error) {
	n, err := f.data.Read(p)
	if errors.Is(err, io.EOF) {
		return n, f.err
	}
	return n, err
}

func TestBuildReadError(t *testing.T) {
	src := &flakyReader{
		data: strings.NewReader(strings.Repeat("unrelated line\n", 8<<10)),
		err:  errors.New("disk gone"),
	}
	b, err := NewBuilder(DefaultConfig())
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	_, err = b.Build(context.Background(), src)
	if !errors.Is(err, ingest.ErrRead) {
		t.Errorf("err = %v, want ingest.ErrRead", err)
	}
}

func TestBuildCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b, err := NewBuilder(DefaultConfig())
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	_, err = b.Build(ctx, strings.NewReader(sampleCorpus))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestBuildProgressCallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ProgressInterval = 2

	var calls []int64
	b, err := NewBuilder(cfg)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	b.WithProgress(func(reviews int64) { calls = append(calls, reviews) })

	// Five complete reviews: callbacks at 2 and 4, plus the final 5.
	corpus := strings.Join(strings.Split(strings.TrimSuffix(sampleCorpus, "\n"), "\n")[:15], "\n")
	if _, err := b.Build(context.Background(), strings.NewReader(corpus)); err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []int64{2, 4, 5}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %d, want %d", i, calls[i], want[i])
		}
	}
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SimilarityThreshold = 2

	if _, err := NewBuilder(cfg); err == nil {
		t.Error("NewBuilder accepted out-of-range threshold")
	}
}
