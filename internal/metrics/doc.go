// Package metrics exposes SafeLink counters in the Prometheus format.
//
// Metrics are registered on their own registry rather than the global
// default, so several instances can coexist in one process (tests, or a
// check command running next to a server). All methods are safe to call on
// a nil *Metrics, which records nothing.
//
// Exported series:
//
//	safelink_navigation_events_total{result, reason}
//	safelink_inspections_total{outcome}
//	safelink_inspection_duration_seconds{outcome}
//	safelink_inspections_in_flight
//	safelink_warning_views_total{state}
package metrics
