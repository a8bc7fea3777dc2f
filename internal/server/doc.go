// Package server serves the warning page and its go-back endpoint over HTTP.
//
// Routes:
//
//	GET  /warning.html          render and consume the stored verdict
//	POST /tabs/{tabID}/back     go back one entry in an emulated tab
//	GET  /healthz               liveness probe
//	GET  /metrics               Prometheus metrics
//
// When the page is requested with ?tab=ID and tab histories are
// available, its go-back control calls the back endpoint for that tab.
package server
