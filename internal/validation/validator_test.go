// Reviewrec - Review Corpus Collaborative Filtering Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package validation

import (
	"strings"
	"testing"
)

type topNRequest struct {
	TopN int `validate:"min=0,max=100"`
}

type userRequest struct {
	UserID string `validate:"required"`
	TopN   int    `validate:"min=0,max=100"`
}

func TestValidateStructPasses(t *testing.T) {
	if verr := ValidateStruct(&topNRequest{TopN: 50}); verr != nil {
		t.Errorf("unexpected validation error: %v", verr)
	}
}

func TestValidateStructSingleFailure(t *testing.T) {
	verr := ValidateStruct(&topNRequest{TopN: 500})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	errs := verr.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
	}
	if errs[0].Field() != "TopN" || errs[0].Tag() != "max" {
		t.Errorf("got field %q tag %q, want TopN/max", errs[0].Field(), errs[0].Tag())
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "at most 100") {
		t.Errorf("Message = %q, want human-readable bound", apiErr.Message)
	}
}

func TestValidateStructMultipleFailures(t *testing.T) {
	verr := ValidateStruct(&userRequest{UserID: "", TopN: -1})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if len(verr.Errors()) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(verr.Errors()), verr)
	}

	apiErr := verr.ToAPIError()
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Errorf("multi-error details missing fields list: %v", apiErr.Details)
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator returned different instances")
	}
}
