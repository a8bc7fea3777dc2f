package inspect

import (
	"context"
	"errors"
	"testing"

	"github.com/nao1215/safelink/internal/classifier"
	"github.com/nao1215/safelink/internal/host"
	"github.com/nao1215/safelink/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, insp *model.Inspection) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, insp *model.Inspection) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, insp)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	p := New()
	if n := len(p.StepNames()); n != 0 {
		t.Errorf("expected 0 steps, got %d", n)
	}
	if p.logger == nil {
		t.Error("expected default logger")
	}

	p.AddStep(&mockStep{name: "a"})
	p.AddSteps(&mockStep{name: "b"}, &mockStep{name: "c"})

	names := p.StepNames()
	if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Errorf("unexpected step names %v", names)
	}
}

// TestPipelineExecute tests step ordering and outcome handling.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("passes every step and finishes blocked", func(t *testing.T) {
		t.Parallel()

		first := &mockStep{name: "first"}
		second := &mockStep{name: "second"}
		p := New()
		p.AddSteps(first, second)

		insp := model.NewInspection(1, "https://example.com/")
		p.Execute(context.Background(), insp)

		if insp.Outcome != model.OutcomeBlocked {
			t.Errorf("expected blocked, got %s", insp.Outcome)
		}
		if first.callCount != 1 || second.callCount != 1 {
			t.Errorf("expected each step once, got %d and %d", first.callCount, second.callCount)
		}
		if len(insp.PerformedSteps) != 2 {
			t.Errorf("expected 2 performed steps, got %v", insp.PerformedSteps)
		}
	})

	t.Run("stops once a step finishes the inspection", func(t *testing.T) {
		t.Parallel()

		first := &mockStep{name: "first", doFunc: func(_ context.Context, insp *model.Inspection) error {
			insp.Finish(model.OutcomeClean, nil)
			return nil
		}}
		second := &mockStep{name: "second"}
		p := New()
		p.AddSteps(first, second)

		insp := model.NewInspection(1, "https://example.com/")
		p.Execute(context.Background(), insp)

		if insp.Outcome != model.OutcomeClean {
			t.Errorf("expected clean, got %s", insp.Outcome)
		}
		if second.callCount != 0 {
			t.Error("expected second step to be skipped")
		}
	})

	t.Run("maps an unrecorded error to an outcome", func(t *testing.T) {
		t.Parallel()

		failing := &mockStep{name: "failing", doFunc: func(context.Context, *model.Inspection) error {
			return &RedirectError{TabID: 1, Err: host.ErrTabNotFound}
		}}
		after := &mockStep{name: "after"}
		p := New()
		p.AddSteps(failing, after)

		insp := model.NewInspection(1, "https://example.com/")
		p.Execute(context.Background(), insp)

		if insp.Outcome != model.OutcomeRedirectAbandoned {
			t.Errorf("expected redirect_abandoned, got %s", insp.Outcome)
		}
		if insp.ErrorMessage == "" {
			t.Error("expected error message to be recorded")
		}
		if after.callCount != 0 {
			t.Error("expected pipeline to stop after the error")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		step := &mockStep{name: "step"}
		p := New()
		p.AddStep(step)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		insp := model.NewInspection(1, "https://example.com/")
		p.Execute(ctx, insp)

		if insp.Outcome != model.OutcomeCancelled {
			t.Errorf("expected cancelled, got %s", insp.Outcome)
		}
		if step.callCount != 0 {
			t.Error("expected no step to run")
		}
	})
}

// TestOutcomeOf tests the error to outcome mapping.
func TestOutcomeOf(t *testing.T) {
	t.Parallel()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		err  error
		want model.Outcome
	}{
		{"nil", context.Background(), nil, model.OutcomePending},
		{"network", context.Background(), &classifier.NetworkError{Err: errors.New("refused")}, model.OutcomeNetworkError},
		{"server", context.Background(), &classifier.ServerError{StatusCode: 500}, model.OutcomeServerError},
		{"persist", context.Background(), &PersistError{Err: errors.New("disk full")}, model.OutcomeStorageError},
		{"tab gone", context.Background(), host.ErrTabNotFound, model.OutcomeRedirectAbandoned},
		{"cancelled", cancelled, &classifier.NetworkError{Err: context.Canceled}, model.OutcomeCancelled},
		{"canceled error with live context", context.Background(), &classifier.NetworkError{Err: context.Canceled}, model.OutcomeNetworkError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := OutcomeOf(tt.ctx, tt.err); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
