// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

// Package models defines the JSON shapes shared by API handlers and
// clients.
package models

import "time"

// APIResponse is the envelope every endpoint returns.
//
//	{
//	  "status": "success",
//	  "data": {...},
//	  "metadata": {"timestamp": "2026-08-29T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response observability fields.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a structured error payload.
//
// Common codes: VALIDATION_ERROR, UNKNOWN_USER, MODEL_NOT_READY,
// NOT_FOUND, INTERNAL_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus reports process and model health.
type HealthStatus struct {
	Status     string     `json:"status"`
	Version    string     `json:"version"`
	ModelReady bool       `json:"model_ready"`
	BuiltAt    *time.Time `json:"model_built_at,omitempty"`
	Uptime     float64    `json:"uptime_seconds"`
}

// ModelStats reports the totals of the active model.
type ModelStats struct {
	TotalReviews  int64      `json:"total_reviews"`
	TotalUsers    int        `json:"total_users"`
	TotalProducts int        `json:"total_products"`
	BuiltAt       *time.Time `json:"built_at,omitempty"`
	BuildMS       int64      `json:"build_duration_ms,omitempty"`
	SourcePath    string     `json:"source_path,omitempty"`
}

// RecommendationItem is one entry of a recommendation list.
type RecommendationItem struct {
	ProductID string  `json:"product_id"`
	Score     float64 `json:"score"`
}

// RecommendationsResponse is the payload of the recommendations endpoint.
type RecommendationsResponse struct {
	UserID          string               `json:"user_id"`
	Recommendations []RecommendationItem `json:"recommendations"`
	Count           int                  `json:"count"`
}
