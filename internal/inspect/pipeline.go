package inspect

import (
	"context"
	"log/slog"

	"github.com/nao1215/safelink/internal/model"
)

// Step is one stage of an inspection.
type Step interface {
	// Do executes the step. A step that ends the flow records the outcome
	// with insp.Finish. A returned error is logged by the pipeline and,
	// if the step did not record an outcome, mapped to one by OutcomeOf.
	Do(ctx context.Context, insp *model.Inspection) error

	// Name returns the step's name for logging and PerformedSteps.
	Name() string
}

// Pipeline executes steps in order until one of them finishes the
// inspection. An inspection that passes every step is blocked.
// A Pipeline holds no per-inspection state and may be shared between
// goroutines as long as its steps can.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for step diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates an empty pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends steps in order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs the steps against insp. When Execute returns, insp is done.
func (p *Pipeline) Execute(ctx context.Context, insp *model.Inspection) {
	for _, step := range p.steps {
		if insp.Done() {
			break
		}

		if err := ctx.Err(); err != nil {
			insp.Finish(model.OutcomeCancelled, err)
			p.logger.Warn("inspection cancelled",
				"id", insp.ID,
				"step", step.Name(),
				"url", insp.URL,
				"reason", err,
			)
			return
		}

		p.logger.Debug("executing step",
			"id", insp.ID,
			"step", step.Name(),
			"url", insp.URL,
		)

		err := step.Do(ctx, insp)
		insp.PerformedSteps = append(insp.PerformedSteps, step.Name())

		if err != nil {
			if !insp.Done() {
				insp.Finish(OutcomeOf(ctx, err), err)
			}
			p.logger.Error("step failed",
				"id", insp.ID,
				"step", step.Name(),
				"tab", insp.TabID,
				"url", insp.URL,
				"outcome", insp.Outcome.String(),
				"error", err,
			)
		}
	}

	if !insp.Done() {
		insp.Finish(model.OutcomeBlocked, nil)
	}

	p.logger.Debug("inspection finished",
		"id", insp.ID,
		"url", insp.URL,
		"outcome", insp.Outcome.String(),
		"elapsed", insp.Duration(),
	)
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
