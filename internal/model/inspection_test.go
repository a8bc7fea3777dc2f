package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// TestOutcomeString tests the names of all outcomes.
func TestOutcomeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomePending, "pending"},
		{OutcomeClean, "clean"},
		{OutcomeBlocked, "blocked"},
		{OutcomeNetworkError, "network_error"},
		{OutcomeServerError, "server_error"},
		{OutcomeStorageError, "storage_error"},
		{OutcomeRedirectAbandoned, "redirect_abandoned"},
		{OutcomeCancelled, "cancelled"},
		{Outcome(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			if got := tt.outcome.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// TestOutcomeClassification tests the Malicious and Unavailable helpers.
func TestOutcomeClassification(t *testing.T) {
	t.Parallel()

	if OutcomeClean.Unavailable() || OutcomeClean.Malicious() {
		t.Error("clean must be neither unavailable nor malicious")
	}
	if !OutcomeNetworkError.Unavailable() || !OutcomeServerError.Unavailable() {
		t.Error("network and server errors must be unavailable")
	}
	for _, o := range []Outcome{OutcomeBlocked, OutcomeStorageError, OutcomeRedirectAbandoned} {
		if !o.Malicious() {
			t.Errorf("%s must be malicious", o)
		}
		if o.Unavailable() {
			t.Errorf("%s must not be unavailable", o)
		}
	}
}

// TestInspectionFinish tests that only the first outcome is recorded.
func TestInspectionFinish(t *testing.T) {
	t.Parallel()

	insp := NewInspection(3, "https://example.com/")
	if insp.ID == "" {
		t.Error("expected inspection id")
	}
	if insp.Done() {
		t.Error("new inspection must be pending")
	}
	if insp.Duration() != 0 {
		t.Error("pending inspection must have zero duration")
	}

	insp.Finish(OutcomeNetworkError, errors.New("connection refused"))
	insp.Finish(OutcomeClean, nil)

	if insp.Outcome != OutcomeNetworkError {
		t.Errorf("expected first outcome to stick, got %s", insp.Outcome)
	}
	if insp.ErrorMessage != "connection refused" {
		t.Errorf("unexpected error message %q", insp.ErrorMessage)
	}
	if insp.FinishedAt.IsZero() {
		t.Error("expected finish time")
	}

	data, err := json.Marshal(insp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `"outcome":"network_error"`) {
		t.Errorf("expected outcome name in JSON, got %s", data)
	}
}
