package inspect

import (
	"context"
	"errors"
	"fmt"

	"github.com/nao1215/safelink/internal/classifier"
	"github.com/nao1215/safelink/internal/host"
	"github.com/nao1215/safelink/internal/model"
)

// ErrNoVerdict is returned by a step that needs a verdict when the
// inspection has none.
var ErrNoVerdict = errors.New("inspection has no verdict")

// PersistError means a malicious verdict could not be written to the
// blocked analysis slot.
type PersistError struct {
	Err error
}

// Error implements error.
func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to store blocked analysis: %v", e.Err)
}

// Unwrap returns the storage error.
func (e *PersistError) Unwrap() error {
	return e.Err
}

// RedirectError means the tab could not be redirected to the warning page,
// typically because it was closed during the classification round-trip.
type RedirectError struct {
	TabID int
	Err   error
}

// Error implements error.
func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirect of tab %d abandoned: %v", e.TabID, e.Err)
}

// Unwrap returns the host error.
func (e *RedirectError) Unwrap() error {
	return e.Err
}

// OutcomeOf maps an error from a step to an outcome.
func OutcomeOf(ctx context.Context, err error) model.Outcome {
	var (
		nerr *classifier.NetworkError
		serr *classifier.ServerError
		perr *PersistError
		rerr *RedirectError
	)

	switch {
	case err == nil:
		return model.OutcomePending
	case ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
		return model.OutcomeCancelled
	case errors.As(err, &nerr):
		return model.OutcomeNetworkError
	case errors.As(err, &serr):
		return model.OutcomeServerError
	case errors.As(err, &perr):
		return model.OutcomeStorageError
	case errors.As(err, &rerr), errors.Is(err, host.ErrTabNotFound):
		return model.OutcomeRedirectAbandoned
	default:
		return model.OutcomeServerError
	}
}
