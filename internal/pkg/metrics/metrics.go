// Package metrics defines and registers all custom Prometheus metrics for the
// account service. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// ── Privileged operations ─────────────────────────────────────────────────────

// OperationsTotal counts privileged operation attempts.
// Labels:
//   - operation: "create" or "delete"
//   - outcome: "succeeded", "rejected" (validation, authentication or authorization)
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of privileged account operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// AdminChecksTotal counts evaluations of the remote admin predicate.
// Label:
//   - result: "allowed", "denied" or "error"
var AdminChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_checks_total",
		Help:      "Total number of admin predicate evaluations, by result.",
	},
	[]string{"result"},
)

// InconsistenciesTotal counts operations that left the auth store and the
// profiles table out of sync.
// Label:
//   - kind: "orphaned_account" (account without profile) or "stale_profile"
//     (deleted account whose profile is still active)
var InconsistenciesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inconsistencies_total",
		Help:      "Total number of partially applied account operations, by kind.",
	},
	[]string{"kind"},
)

// ── Upstream ──────────────────────────────────────────────────────────────────

// UpstreamDuration measures calls to the hosted backend.
// Label:
//   - call: "create_user", "delete_user", "get_user", "is_admin",
//     "upsert_profile", "update_profile", "health"
var UpstreamDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_duration_seconds",
		Help:      "Duration of calls to the auth provider and data API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"call"},
)

// ── Rate limiting ─────────────────────────────────────────────────────────────

// RateLimitedTotal counts requests rejected by the rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of privileged requests rejected by the rate limiter.",
	},
)
