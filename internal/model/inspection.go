package model

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the discrete result of inspecting one navigation.
// Every failure mode of the classification flow maps to exactly one value.
type Outcome int

const (
	// OutcomePending means the inspection has not finished yet.
	OutcomePending Outcome = iota

	// OutcomeClean means the service returned is_malicious == false.
	OutcomeClean

	// OutcomeBlocked means the verdict was stored and the tab was redirected.
	OutcomeBlocked

	// OutcomeNetworkError means the service could not be reached.
	OutcomeNetworkError

	// OutcomeServerError means the service answered with a non-2xx status
	// or a body that could not be decoded.
	OutcomeServerError

	// OutcomeStorageError means a malicious verdict could not be stored.
	OutcomeStorageError

	// OutcomeRedirectAbandoned means the verdict was stored but the tab
	// no longer existed when the redirect was attempted.
	OutcomeRedirectAbandoned

	// OutcomeCancelled means the inspection was cancelled before finishing.
	OutcomeCancelled
)

// String returns the snake_case name used in logs, metrics and JSON.
func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeClean:
		return "clean"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeNetworkError:
		return "network_error"
	case OutcomeServerError:
		return "server_error"
	case OutcomeStorageError:
		return "storage_error"
	case OutcomeRedirectAbandoned:
		return "redirect_abandoned"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Malicious reports whether the service judged the URL malicious,
// regardless of whether the redirect went through.
func (o Outcome) Malicious() bool {
	switch o {
	case OutcomeBlocked, OutcomeStorageError, OutcomeRedirectAbandoned:
		return true
	default:
		return false
	}
}

// Unavailable reports whether no verdict was obtained. Navigation proceeds
// in that case exactly as for a clean verdict; this only lets callers tell
// the two apart.
func (o Outcome) Unavailable() bool {
	switch o {
	case OutcomeNetworkError, OutcomeServerError, OutcomeCancelled:
		return true
	default:
		return false
	}
}

// Inspection records the handling of one navigation.
type Inspection struct {
	// ID correlates log lines and the X-Request-ID header of the request.
	ID string `json:"id"`

	// TabID is the tab that navigated.
	TabID int `json:"tabId"`

	// URL is the address that was classified.
	URL string `json:"url"`

	// Response is the verdict, when one was obtained.
	Response *AnalysisResponse `json:"response,omitempty"`

	// Outcome is the final result.
	Outcome Outcome `json:"outcome"`

	// Err is the error that ended the inspection, if any.
	Err error `json:"-"`

	// ErrorMessage is Err rendered for JSON output.
	ErrorMessage string `json:"error,omitempty"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"steps"`

	// StartedAt and FinishedAt bound the inspection.
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// NewInspection creates a pending inspection for a tab and URL.
func NewInspection(tabID int, url string) *Inspection {
	return &Inspection{
		ID:             uuid.NewString(),
		TabID:          tabID,
		URL:            url,
		Outcome:        OutcomePending,
		PerformedSteps: make([]string, 0, 3),
		StartedAt:      time.Now(),
	}
}

// Finish records the outcome and the error that caused it, if any.
// Only the first call has effect.
func (i *Inspection) Finish(outcome Outcome, err error) {
	if i.Done() {
		return
	}
	i.Outcome = outcome
	i.Err = err
	if err != nil {
		i.ErrorMessage = err.Error()
	}
	i.FinishedAt = time.Now()
}

// Done reports whether an outcome has been recorded.
func (i *Inspection) Done() bool {
	return i.Outcome != OutcomePending
}

// Duration returns how long the inspection took, or zero while pending.
func (i *Inspection) Duration() time.Duration {
	if i.FinishedAt.IsZero() {
		return 0
	}
	return i.FinishedAt.Sub(i.StartedAt)
}
