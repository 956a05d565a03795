// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package engine

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
)

func TestRecommendationsForSimilarUser(t *testing.T) {
	m := buildSample(t, DefaultConfig())

	got, err := m.RecommendationsFor(context.Background(), "U0", 3)
	if err != nil {
		t.Fatalf("RecommendationsFor: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %v, want exactly one recommendation", got)
	}
	if got[0].ProductID != "P2" {
		t.Errorf("ProductID = %q, want P2", got[0].ProductID)
	}
	// Single neighbor: prediction collapses to the neighbor's own rating.
	if math.Abs(got[0].Score-4) > 1e-12 {
		t.Errorf("Score = %v, want 4", got[0].Score)
	}
}

func TestRecommendationsNeverIncludeRatedProducts(t *testing.T) {
	m := buildSample(t, DefaultConfig())

	got, err := m.RecommendationsFor(context.Background(), "U0", 100)
	if err != nil {
		t.Fatalf("RecommendationsFor: %v", err)
	}
	for _, rec := range got {
		if rec.ProductID == "P0" || rec.ProductID == "P1" {
			t.Errorf("recommended a product the user already rated: %v", rec)
		}
	}
}

func TestRecommendationsForIsolatedUser(t *testing.T) {
	m := buildSample(t, DefaultConfig())

	// U2 shares no products with anyone; the empty result is not an error.
	got, err := m.RecommendationsFor(context.Background(), "U2", 3)
	if err != nil {
		t.Fatalf("RecommendationsFor: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestRecommendationsForUnknownUser(t *testing.T) {
	m := buildSample(t, DefaultConfig())

	_, err := m.RecommendationsFor(context.Background(), "nobody", 3)
	if !errors.Is(err, ErrUnknownUser) {
		t.Errorf("err = %v, want ErrUnknownUser", err)
	}
}

func TestRecommendationsTopNClamping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultTopN = 1
	cfg.MaxTopN = 1
	m := buildSample(t, cfg)

	tests := []struct {
		name string
		topN int
	}{
		{"zero falls back to default", 0},
		{"negative falls back to default", -5},
		{"above maximum is clamped", 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.RecommendationsFor(context.Background(), "U0", tt.topN)
			if err != nil {
				t.Fatalf("RecommendationsFor: %v", err)
			}
			if len(got) > 1 {
				t.Errorf("got %d recommendations, want at most 1", len(got))
			}
		})
	}
}

func TestRecommendationsDeterministic(t *testing.T) {
	m := buildSample(t, DefaultConfig())

	first, err := m.RecommendationsFor(context.Background(), "U0", 3)
	if err != nil {
		t.Fatalf("RecommendationsFor: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := m.RecommendationsFor(context.Background(), "U0", 3)
		if err != nil {
			t.Fatalf("RecommendationsFor: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: got %v, want %v", i, again, first)
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: got %v, want %v", i, again, first)
			}
		}
	}
}

func TestModelConcurrentQueries(t *testing.T) {
	m := buildSample(t, DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := m.RecommendationsFor(context.Background(), "U0", 3); err != nil {
					t.Errorf("RecommendationsFor: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestKnowsUser(t *testing.T) {
	m := buildSample(t, DefaultConfig())

	if !m.KnowsUser("U1") {
		t.Error("KnowsUser(U1) = false, want true")
	}
	if m.KnowsUser("ghost") {
		t.Error("KnowsUser(ghost) = true, want false")
	}
}
