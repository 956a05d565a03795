// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reviewrec/internal/engine"
	"github.com/tomtom215/reviewrec/internal/models"
	"github.com/tomtom215/reviewrec/internal/snapshot"
)

const testCorpus = `product/productId: P0
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

func testModel(t *testing.T) *engine.Model {
	t.Helper()
	b, err := engine.NewBuilder(engine.DefaultConfig())
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	m, err := b.Build(context.Background(), strings.NewReader(testCorpus))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return m
}

func testServer(t *testing.T, model *engine.Model) http.Handler {
	t.Helper()
	var summary *snapshot.BuildSummary
	if model != nil {
		summary = &snapshot.BuildSummary{
			SourcePath:    "testdata/corpus.txt",
			TotalReviews:  model.TotalReviews(),
			TotalUsers:    model.TotalUsers(),
			TotalProducts: model.TotalProducts(),
			BuiltAt:       time.Now(),
			DurationMS:    12,
		}
	}
	return NewRouter(NewHandler(model, summary), nil).Setup()
}

func doRequest(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, *models.APIResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
	}
	return rec, &resp
}

func TestHealthLive(t *testing.T) {
	h := testServer(t, nil)
	rec, resp := doRequest(t, h, "/api/v1/health/live")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if resp.Status != "success" {
		t.Errorf("Status = %q, want success", resp.Status)
	}
}

func TestHealthReady(t *testing.T) {
	t.Run("model missing", func(t *testing.T) {
		h := testServer(t, nil)
		rec, resp := doRequest(t, h, "/api/v1/health/ready")
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
		if resp.Error == nil || resp.Error.Code != "MODEL_NOT_READY" {
			t.Errorf("error = %+v, want MODEL_NOT_READY", resp.Error)
		}
	})

	t.Run("model loaded", func(t *testing.T) {
		h := testServer(t, testModel(t))
		rec, _ := doRequest(t, h, "/api/v1/health/ready")
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}

func TestStats(t *testing.T) {
	h := testServer(t, testModel(t))
	rec, resp := doRequest(t, h, "/api/v1/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("remarshal data: %v", err)
	}
	var stats models.ModelStats
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatalf("unmarshal stats: %v", err)
	}
	if stats.TotalReviews != 6 || stats.TotalUsers != 3 || stats.TotalProducts != 4 {
		t.Errorf("stats = %+v, want 6 reviews / 3 users / 4 products", stats)
	}
	if stats.SourcePath != "testdata/corpus.txt" {
		t.Errorf("SourcePath = %q", stats.SourcePath)
	}
}

func decodeRecommendations(t *testing.T, resp *models.APIResponse) models.RecommendationsResponse {
	t.Helper()
	data, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("remarshal data: %v", err)
	}
	var out models.RecommendationsResponse
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal recommendations: %v", err)
	}
	return out
}

func TestRecommendations(t *testing.T) {
	h := testServer(t, testModel(t))

	rec, resp := doRequest(t, h, "/api/v1/recommendations/U0?n=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	out := decodeRecommendations(t, resp)
	if out.UserID != "U0" {
		t.Errorf("UserID = %q, want U0", out.UserID)
	}
	if out.Count != 1 || len(out.Recommendations) != 1 {
		t.Fatalf("got %+v, want one recommendation", out)
	}
	if out.Recommendations[0].ProductID != "P2" {
		t.Errorf("ProductID = %q, want P2", out.Recommendations[0].ProductID)
	}
}

func TestRecommendationsIsolatedUser(t *testing.T) {
	h := testServer(t, testModel(t))

	rec, resp := doRequest(t, h, "/api/v1/recommendations/U2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	out := decodeRecommendations(t, resp)
	if out.Count != 0 {
		t.Errorf("Count = %d, want 0", out.Count)
	}
}

func TestRecommendationsUnknownUser(t *testing.T) {
	h := testServer(t, testModel(t))

	rec, resp := doRequest(t, h, "/api/v1/recommendations/nobody")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "UNKNOWN_USER" {
		t.Errorf("error = %+v, want UNKNOWN_USER", resp.Error)
	}
}

func TestRecommendationsInvalidTopN(t *testing.T) {
	h := testServer(t, testModel(t))

	rec, resp := doRequest(t, h, "/api/v1/recommendations/U0?n=5000")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", resp.Error)
	}
}

func TestResponseHeaders(t *testing.T) {
	h := testServer(t, testModel(t))

	rec, _ := doRequest(t, h, "/api/v1/stats")
	if rec.Header().Get("ETag") == "" {
		t.Error("ETag header missing")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := testServer(t, testModel(t))

	// Populate the request counter so it appears in the exposition.
	doRequest(t, h, "/api/v1/stats")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}
}
