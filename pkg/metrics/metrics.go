// Package metrics defines the Prometheus metrics exported by ACTS. It is the
// single source of truth for metric names, labels, and help strings.
//
// Metrics register with the default Prometheus registry on package load and
// are served by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "acts"

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts HTTP requests served.
// Labels:
//   - route: the mux route template (e.g. "/Person/{name}")
//   - method: HTTP method
//   - code: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests, by route, method and status code.",
	},
	[]string{"route", "method", "code"},
)

// HTTPRequestDuration measures time spent serving HTTP requests.
// Labels:
//   - route: the mux route template
//   - method: HTTP method
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route", "method"},
)

// ── Mediator metrics ──────────────────────────────────────────────────────────

// RequestsDispatchedTotal counts mediator dispatches.
// Labels:
//   - request: request type name (e.g. "CreatePerson")
//   - kind: "command" or "query"
//   - outcome: "success" or "error"
var RequestsDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mediator",
		Name:      "requests_total",
		Help:      "Total number of commands and queries dispatched, by outcome.",
	},
	[]string{"request", "kind", "outcome"},
)

// RequestDispatchDuration measures handler execution time including
// pre-processors.
// Label:
//   - request: request type name
var RequestDispatchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "mediator",
		Name:      "request_duration_seconds",
		Help:      "Duration of command and query handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"request"},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// DutiesAssignedTotal counts duty assignments that were persisted.
// Label:
//   - transition: "first" (no prior duty), "succession" (prior duty closed) or "retirement"
var DutiesAssignedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "duties_assigned_total",
		Help:      "Total number of astronaut duties assigned, by transition type.",
	},
	[]string{"transition"},
)

// RosterEntriesTotal counts roster import decisions.
// Label:
//   - result: "created", "assigned", "skipped" or "failed"
var RosterEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_entries_total",
		Help:      "Total number of roster entries processed, by result.",
	},
	[]string{"result"},
)
