// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/reviewrec/internal/ingest"
)

func TestRecordIngestSuccess(t *testing.T) {
	before := testutil.ToFloat64(IngestReviewsProcessed)
	RecordIngest(2*time.Second, 1500, nil)
	after := testutil.ToFloat64(IngestReviewsProcessed)

	if after-before != 1500 {
		t.Errorf("reviews processed delta = %v, want 1500", after-before)
	}
}

func TestRecordIngestErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "parse error",
			err:  &ingest.ParseError{Line: 3, Value: "bad", Err: errors.New("syntax")},
			want: "parse",
		},
		{
			name: "read error",
			err:  fmt.Errorf("%w: disk gone", ingest.ErrRead),
			want: "read",
		},
		{
			name: "anything else",
			err:  errors.New("mystery"),
			want: "other",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := IngestErrors.WithLabelValues(tt.want)
			before := testutil.ToFloat64(counter)
			RecordIngest(time.Second, 0, tt.err)
			if got := testutil.ToFloat64(counter); got-before != 1 {
				t.Errorf("counter %q delta = %v, want 1", tt.want, got-before)
			}
		})
	}
}

func TestSetModelStats(t *testing.T) {
	SetModelStats(42, 7, 9)

	if got := testutil.ToFloat64(ModelReviews); got != 42 {
		t.Errorf("ModelReviews = %v, want 42", got)
	}
	if got := testutil.ToFloat64(ModelUsers); got != 7 {
		t.Errorf("ModelUsers = %v, want 7", got)
	}
	if got := testutil.ToFloat64(ModelProducts); got != 9 {
		t.Errorf("ModelProducts = %v, want 9", got)
	}
	if got := testutil.ToFloat64(ModelBuildTimestamp); got == 0 {
		t.Error("ModelBuildTimestamp not set")
	}
}

func TestRecordRecommendationEmptyResult(t *testing.T) {
	servedBefore := testutil.ToFloat64(RecommendationsServed)
	emptyBefore := testutil.ToFloat64(RecommendationEmpty)

	RecordRecommendation(10*time.Millisecond, 3)
	RecordRecommendation(10*time.Millisecond, 0)

	if got := testutil.ToFloat64(RecommendationsServed); got-servedBefore != 2 {
		t.Errorf("served delta = %v, want 2", got-servedBefore)
	}
	if got := testutil.ToFloat64(RecommendationEmpty); got-emptyBefore != 1 {
		t.Errorf("empty delta = %v, want 1", got-emptyBefore)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got-before != 1 {
		t.Errorf("active requests delta = %v, want 1", got-before)
	}
}
