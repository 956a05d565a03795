// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

// Package metrics exposes Prometheus instrumentation for corpus ingestion,
// model state, and the recommendation API.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/reviewrec/internal/ingest"
)

var (
	// Ingest metrics.
	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingest_duration_seconds",
			Help:    "Duration of corpus ingestion in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	IngestReviewsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingest_reviews_processed_total",
			Help: "Total number of complete reviews ingested",
		},
	)

	IngestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_errors_total",
			Help: "Total number of ingest failures",
		},
		[]string{"error_type"}, // "parse", "read"
	)

	// Model metrics, set once per successful build.
	ModelReviews = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_reviews",
			Help: "Number of reviews in the active model",
		},
	)

	ModelUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_users",
			Help: "Number of distinct users in the active model",
		},
	)

	ModelProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_products",
			Help: "Number of distinct products in the active model",
		},
	)

	ModelBuildTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_build_timestamp",
			Help: "Unix timestamp of the last successful model build",
		},
	)

	// Recommendation query metrics.
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendationsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of recommendation lists served",
		},
	)

	RecommendationEmpty = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_empty_total",
			Help: "Total number of recommendation queries with an empty result",
		},
	)

	RecommendationUnknownUser = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_unknown_user_total",
			Help: "Total number of recommendation queries for unknown users",
		},
	)

	// API metrics.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordIngest records the outcome of a corpus build.
func RecordIngest(duration time.Duration, reviews int64, err error) {
	if err != nil {
		IngestErrors.WithLabelValues(classifyIngestError(err)).Inc()
		return
	}
	IngestDuration.Observe(duration.Seconds())
	IngestReviewsProcessed.Add(float64(reviews))
}

// classifyIngestError buckets an ingest failure for the error_type label.
func classifyIngestError(err error) string {
	var perr *ingest.ParseError
	switch {
	case errors.As(err, &perr):
		return "parse"
	case errors.Is(err, ingest.ErrRead):
		return "read"
	default:
		return "other"
	}
}

// SetModelStats publishes the totals of a freshly built model.
func SetModelStats(reviews int64, users, products int) {
	ModelReviews.Set(float64(reviews))
	ModelUsers.Set(float64(users))
	ModelProducts.Set(float64(products))
	ModelBuildTimestamp.Set(float64(time.Now().Unix()))
}

// RecordRecommendation records a completed recommendation query.
func RecordRecommendation(duration time.Duration, results int) {
	RecommendationDuration.Observe(duration.Seconds())
	RecommendationsServed.Inc()
	if results == 0 {
		RecommendationEmpty.Inc()
	}
}

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
