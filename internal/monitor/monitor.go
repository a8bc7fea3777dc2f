package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/nao1215/safelink/internal/inspect"
	"github.com/nao1215/safelink/internal/metrics"
	"github.com/nao1215/safelink/internal/model"
)

// DefaultConcurrency is the number of inspections Run keeps in flight.
const DefaultConcurrency = 16

// Monitor turns navigation events into inspections.
type Monitor struct {
	pipeline    *inspect.Pipeline
	warningURL  string
	concurrency int
	dedupe      bool
	group       singleflight.Group
	metrics     *metrics.Metrics
	logger      *slog.Logger
	onResult    func(*model.Inspection)
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) {
		m.logger = logger
	}
}

// WithConcurrency sets the maximum number of inspections in flight.
// A non-positive value removes the limit.
func WithConcurrency(n int) Option {
	return func(m *Monitor) {
		m.concurrency = n
	}
}

// WithDedupeInFlight coalesces events for the same tab and URL while an
// inspection for that pair is still running.
func WithDedupeInFlight(enabled bool) Option {
	return func(m *Monitor) {
		m.dedupe = enabled
	}
}

// WithMetrics records event and inspection metrics.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Monitor) {
		m.metrics = mt
	}
}

// WithResultHandler sets a callback run once for every finished inspection.
// It is called from the inspecting goroutine.
func WithResultHandler(fn func(*model.Inspection)) Option {
	return func(m *Monitor) {
		m.onResult = fn
	}
}

// New creates a monitor that runs pipeline for accepted events.
// warningURL is the resolved warning page address used by Accept.
func New(pipeline *inspect.Pipeline, warningURL string, opts ...Option) *Monitor {
	m := &Monitor{
		pipeline:    pipeline,
		warningURL:  warningURL,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.Default()
	}

	return m
}

// Run consumes events until the channel is closed or ctx is cancelled,
// then waits for in-flight inspections. It returns ctx.Err() when
// cancelled and nil otherwise.
func (m *Monitor) Run(ctx context.Context, events <-chan model.NavigationEvent) error {
	g := new(errgroup.Group)
	if m.concurrency > 0 {
		g.SetLimit(m.concurrency)
	}

	m.logger.Info("monitor started",
		"steps", strings.Join(m.pipeline.StepNames(), ","),
		"concurrency", m.concurrency,
		"dedupe_in_flight", m.dedupe,
		"warning_page", m.warningURL,
	)

	var err error
loop:
	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break loop
		case event, ok := <-events:
			if !ok {
				break loop
			}
			if !m.accept(event) {
				continue
			}
			g.Go(func() error {
				m.handle(ctx, event)
				return nil
			})
		}
	}

	_ = g.Wait() //nolint:errcheck // inspections report through outcomes

	m.logger.Info("monitor stopped", "reason", err)
	return err
}

// Handle inspects event synchronously. It returns false, and no
// inspection, when the event is filtered out.
func (m *Monitor) Handle(ctx context.Context, event model.NavigationEvent) (*model.Inspection, bool) {
	if !m.accept(event) {
		return nil, false
	}
	return m.handle(ctx, event), true
}

func (m *Monitor) accept(event model.NavigationEvent) bool {
	ok, reason := Accept(event, m.warningURL)
	if !ok {
		m.metrics.EventDropped(string(reason))
		m.logger.Debug("navigation ignored",
			"tab", event.TabID,
			"url", event.URL,
			"status", event.Status,
			"reason", reason,
		)
		return false
	}
	m.metrics.EventAccepted()
	return true
}

func (m *Monitor) handle(ctx context.Context, event model.NavigationEvent) *model.Inspection {
	if !m.dedupe {
		return m.inspect(ctx, event)
	}

	key := fmt.Sprintf("%d\x00%s", event.TabID, event.URL)
	v, _, shared := m.group.Do(key, func() (any, error) {
		return m.inspect(ctx, event), nil
	})
	if shared {
		m.logger.Debug("navigation coalesced with in-flight inspection",
			"tab", event.TabID,
			"url", event.URL,
		)
	}
	return v.(*model.Inspection)
}

func (m *Monitor) inspect(ctx context.Context, event model.NavigationEvent) *model.Inspection {
	insp := model.NewInspection(event.TabID, event.URL)
	m.logger.Info("checking url",
		"id", insp.ID,
		"tab", insp.TabID,
		"url", insp.URL,
	)

	m.metrics.InspectionStarted()
	m.pipeline.Execute(ctx, insp)
	m.metrics.InspectionFinished(insp)

	if m.onResult != nil {
		m.onResult(insp)
	}
	return insp
}
