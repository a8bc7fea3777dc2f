package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nao1215/safelink/internal/model"
)

const namespace = "safelink"

// Metrics holds the SafeLink collectors.
type Metrics struct {
	registry *prometheus.Registry

	events      *prometheus.CounterVec
	inspections *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	inFlight    prometheus.Gauge
	views       *prometheus.CounterVec
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "navigation_events_total",
				Help:      "Navigation events seen by the monitor.",
			},
			[]string{"result", "reason"},
		),
		inspections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "inspections_total",
				Help:      "Finished inspections by outcome.",
			},
			[]string{"outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "inspection_duration_seconds",
				Help:      "Time from accepting a navigation to its outcome.",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"outcome"},
		),
		inFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "inspections_in_flight",
				Help:      "Inspections waiting for the classification service.",
			},
		),
		views: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "warning_views_total",
				Help:      "Warning page loads by rendered state.",
			},
			[]string{"state"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// EventAccepted counts an event handed to the pipeline.
func (m *Metrics) EventAccepted() {
	if m == nil {
		return
	}
	m.events.WithLabelValues("accepted", "").Inc()
}

// EventDropped counts an event rejected by the filter for reason.
func (m *Metrics) EventDropped(reason string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues("dropped", reason).Inc()
}

// InspectionStarted marks one more inspection in flight.
func (m *Metrics) InspectionStarted() {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

// InspectionFinished records the outcome and duration of insp.
func (m *Metrics) InspectionFinished(insp *model.Inspection) {
	if m == nil {
		return
	}
	outcome := insp.Outcome.String()
	m.inFlight.Dec()
	m.inspections.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(insp.Duration().Seconds())
}

// WarningViewed counts a warning page load rendered in state.
func (m *Metrics) WarningViewed(state string) {
	if m == nil {
		return
	}
	m.views.WithLabelValues(state).Inc()
}
