// Package metrics defines and registers all custom Prometheus metrics for the
// insurance portal. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init through promauto; /metrics serves that registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "insurance"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts resolved login attempts.
// Label:
//   - result: "success", "failure" or "rejected" (attempt refused before start)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// LoginDuration measures a login from start to resolution, simulated latency included.
var LoginDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of login attempts from start to resolution.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Claim workflow metrics ────────────────────────────────────────────────────

// ClaimTransitionsTotal counts applied claim status transitions.
// Labels:
//   - from: status before the transition (e.g. "pending")
//   - to:   status after the transition (e.g. "approved")
var ClaimTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "claim_transitions_total",
		Help:      "Total number of claim status transitions applied.",
	},
	[]string{"from", "to"},
)

// ClaimTransitionErrorsTotal counts refused claim actions.
// Label:
//   - reason: "not_found", "invalid_transition" or "update_failed"
var ClaimTransitionErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "claim_transition_errors_total",
		Help:      "Total number of claim actions that failed.",
	},
	[]string{"reason"},
)

// ClaimsSubmittedTotal counts new claims.
// Label:
//   - type: the policy type the claim mirrors
var ClaimsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "claims_submitted_total",
		Help:      "Total number of claims submitted, by policy type.",
	},
	[]string{"type"},
)

// ClaimActionsQueueDepth tracks actions waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ClaimActionsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "claim_actions_queue_depth",
		Help:      "Current number of claim actions pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreMutationsTotal counts successful domain store writes.
// Labels:
//   - entity: "user", "policy", "claim" or "payment"
//   - op:     "add" or "update"
var StoreMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_mutations_total",
		Help:      "Total number of domain store mutations, by entity and operation.",
	},
	[]string{"entity", "op"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts served requests.
// Labels:
//   - method: HTTP method
//   - route:  the registered route pattern (e.g. "/v1/claims/:id/transition")
//   - code:   response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served.",
	},
	[]string{"method", "route", "code"},
)

// HTTPRequestDuration observes request latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)
