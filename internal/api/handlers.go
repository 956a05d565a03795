// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reviewrec/internal/engine"
	"github.com/tomtom215/reviewrec/internal/logging"
	"github.com/tomtom215/reviewrec/internal/metrics"
	"github.com/tomtom215/reviewrec/internal/models"
	"github.com/tomtom215/reviewrec/internal/snapshot"
)

// Version is the service version reported by health endpoints.
const Version = "1.0.0"

// Handler serves the recommendation API over an immutable model.
type Handler struct {
	model     *engine.Model
	summary   *snapshot.BuildSummary
	startTime time.Time
}

// NewHandler creates a Handler. summary may be nil when no build summary is
// available.
func NewHandler(model *engine.Model, summary *snapshot.BuildSummary) *Handler {
	return &Handler{
		model:     model,
		summary:   summary,
		startTime: time.Now(),
	}
}

// HealthLive reports process liveness; it never checks dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "alive"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady reports readiness: the model must be loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	if h.model == nil {
		respondError(w, http.StatusServiceUnavailable, "MODEL_NOT_READY", "Model is not loaded", nil)
		return
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "ready"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// Health reports overall service health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	status := "healthy"
	if h.model == nil {
		status = "degraded"
	}

	var builtAt *time.Time
	if h.summary != nil {
		builtAt = &h.summary.BuiltAt
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:     status,
			Version:    Version,
			ModelReady: h.model != nil,
			BuiltAt:    builtAt,
			Uptime:     time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// Stats reports the totals of the active model.
func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	if h.model == nil {
		respondError(w, http.StatusServiceUnavailable, "MODEL_NOT_READY", "Model is not loaded", nil)
		return
	}

	stats := models.ModelStats{
		TotalReviews:  h.model.TotalReviews(),
		TotalUsers:    h.model.TotalUsers(),
		TotalProducts: h.model.TotalProducts(),
	}
	if h.summary != nil {
		stats.BuiltAt = &h.summary.BuiltAt
		stats.BuildMS = h.summary.DurationMS
		stats.SourcePath = h.summary.SourcePath
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     stats,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// recommendationsRequest carries the validated query parameters of the
// recommendations endpoint.
type recommendationsRequest struct {
	UserID string `validate:"required,max=256"`
	TopN   int    `validate:"min=0,max=100"`
}

// Recommendations serves GET /api/v1/recommendations/{userID}?n=N.
//
// Unknown users yield 404 with code UNKNOWN_USER; a user without
// sufficiently similar peers yields an empty list, which is a success.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if h.model == nil {
		respondError(w, http.StatusServiceUnavailable, "MODEL_NOT_READY", "Model is not loaded", nil)
		return
	}

	req := recommendationsRequest{
		UserID: chi.URLParam(r, "userID"),
		TopN:   getIntParam(r, "n", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()
	recs, err := h.model.RecommendationsFor(r.Context(), req.UserID, req.TopN)
	switch {
	case err == nil:
	case errors.Is(err, engine.ErrUnknownUser):
		metrics.RecommendationUnknownUser.Inc()
		respondError(w, http.StatusNotFound, "UNKNOWN_USER", "User not found in corpus", nil)
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client went away or the request timed out; nothing to send.
		logger := logging.Ctx(r.Context())
		logger.Debug().
			Str("user", sanitizeLogValue(req.UserID)).
			Msg("Recommendation query cancelled")
		return
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Recommendation query failed", err)
		return
	}
	elapsed := time.Since(start)
	metrics.RecordRecommendation(elapsed, len(recs))

	items := make([]models.RecommendationItem, len(recs))
	for i, rec := range recs {
		items[i] = models.RecommendationItem{ProductID: rec.ProductID, Score: rec.Score}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.RecommendationsResponse{
			UserID:          req.UserID,
			Recommendations: items,
			Count:           len(items),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: elapsed.Milliseconds(),
		},
	})
}
