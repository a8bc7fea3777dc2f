package inspect

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/safelink/internal/model"
)

// DefaultConcurrency is the number of inspections a Batch runs at once.
const DefaultConcurrency = 4

// Batch runs one pipeline over many URLs concurrently.
type Batch struct {
	pipeline    *Pipeline
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithBatchLogger sets the logger for batch progress.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *Batch) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent inspections.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatch creates a batch runner for pipeline.
func NewBatch(pipeline *Pipeline, opts ...BatchOption) *Batch {
	b := &Batch{
		pipeline:    pipeline,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// Run inspects every URL and returns the inspections in input order.
// URLs are not tied to a tab, so TabID is zero. Inspections that could not
// start before ctx was cancelled are finished as cancelled.
func (b *Batch) Run(ctx context.Context, urls []string) []*model.Inspection {
	results := make([]*model.Inspection, len(urls))
	start := time.Now()

	g := new(errgroup.Group)
	g.SetLimit(b.concurrency)

	for i, url := range urls {
		insp := model.NewInspection(0, url)
		results[i] = insp

		if err := ctx.Err(); err != nil {
			insp.Finish(model.OutcomeCancelled, err)
			continue
		}

		g.Go(func() error {
			b.pipeline.Execute(ctx, insp)
			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // goroutines never fail, outcomes are on the inspections

	b.logger.Info("batch finished",
		"total", len(urls),
		"concurrency", b.concurrency,
		"elapsed", time.Since(start),
	)
	return results
}
