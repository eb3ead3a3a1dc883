// Package metrics defines and registers all custom Prometheus metrics for the
// LocalChefBazaar API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chefbazaar"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsIssuedTotal counts session tokens issued via /getToken.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of session tokens issued.",
	},
)

// AuthFailuresTotal counts requests rejected by the authentication guard.
// Label:
//   - reason: "missing_token" or "invalid_token"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the authentication guard.",
	},
	[]string{"reason"},
)

// ── Role-change workflow metrics ──────────────────────────────────────────────

// RoleRequestsTotal counts role-change submissions.
// Labels:
//   - role: the requested target role ("chef" or "admin")
//   - result: "created" for a new pending record, "duplicate" for the
//     idempotent acknowledgment of an already-pending request
var RoleRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_requests_total",
		Help:      "Total number of role-change submissions, by requested role and result.",
	},
	[]string{"role", "result"},
)

// RoleRequestDecisionsTotal counts admin decisions on role-change requests.
// Label:
//   - decision: "approved" or "rejected"
var RoleRequestDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_request_decisions_total",
		Help:      "Total number of admin decisions on role-change requests.",
	},
	[]string{"decision"},
)

// ChefIDAllocationAttempts measures how many probe iterations one successful
// chef-identifier allocation needed. A drifting distribution signals keyspace
// pressure long before the attempt bound is hit.
var ChefIDAllocationAttempts = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "chef_id_allocation_attempts",
		Help:      "Probe iterations per successful chef identifier allocation.",
		Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34, 55},
	},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// FraudFlagsTotal counts accounts flagged as fraud by an admin.
var FraudFlagsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fraud_flags_total",
		Help:      "Total number of accounts flagged as fraud.",
	},
)

// LastSeenDropsTotal counts last-seen touches dropped because a dispatcher
// shard buffer was full.
var LastSeenDropsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "last_seen_drops_total",
		Help:      "Total number of last-seen touches dropped due to a full worker buffer.",
	},
)
