package services

import (
	"testing"
	"time"

	"txn-analytics/internal/errors"
	"txn-analytics/internal/models"
)

var testNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func TestBuildFilter_Defaults(t *testing.T) {
	f, err := BuildFilter("", "", "", "", testNow)
	if err != nil {
		t.Fatalf("BuildFilter() unexpected error: %v", err)
	}

	wantStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !f.Start.Equal(wantStart) {
		t.Errorf("default start = %v, want first of month %v", f.Start, wantStart)
	}

	wantEnd := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !f.End.Equal(wantEnd) {
		t.Errorf("default end = %v, want today %v", f.End, wantEnd)
	}

	if f.StatusLabel() != "all" || f.TypeLabel() != "all" {
		t.Errorf("default labels = %s/%s, want all/all", f.StatusLabel(), f.TypeLabel())
	}
}

func TestBuildFilter_ExplicitRange(t *testing.T) {
	f, err := BuildFilter("2024-01-01", "2024-01-31", "successful", "payment", testNow)
	if err != nil {
		t.Fatalf("BuildFilter() unexpected error: %v", err)
	}

	if f.Start.Format("2006-01-02") != "2024-01-01" {
		t.Errorf("start = %v", f.Start)
	}
	if f.End.Format("2006-01-02") != "2024-01-31" {
		t.Errorf("end = %v", f.End)
	}
	if f.Status != models.StatusSuccessful {
		t.Errorf("status = %q", f.Status)
	}
	if f.Type != models.TypePayment {
		t.Errorf("type = %q", f.Type)
	}
}

func TestBuildFilter_Validation(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		sf    string
		tf    string
	}{
		{name: "malformed start date", start: "2024/01/01"},
		{name: "malformed end date", end: "31-01-2024"},
		{name: "start after end", start: "2024-02-01", end: "2024-01-01"},
		{name: "invalid status", sf: "pending"},
		{name: "invalid type", tf: "refund"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFilter(tt.start, tt.end, tt.sf, tt.tf, testNow)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			appErr, ok := err.(*errors.AppError)
			if !ok {
				t.Fatalf("expected *AppError, got %T", err)
			}
			if appErr.Code != errors.CodeBadRequest {
				t.Errorf("error code = %s, want %s", appErr.Code, errors.CodeBadRequest)
			}
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	f := models.Filter{
		Start:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Status: models.StatusSuccessful,
	}

	in := models.Transaction{
		Status: models.StatusSuccessful,
		Type:   models.TypePayment,
		Date:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	if !f.Matches(in) {
		t.Error("transaction on inclusive end date should match")
	}

	out := in
	out.Date = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	if f.Matches(out) {
		t.Error("transaction after end date should not match")
	}

	failed := in
	failed.Status = models.StatusFailed
	if f.Matches(failed) {
		t.Error("failed transaction should not match successful filter")
	}
}
