// Package metrics defines the custom Prometheus metrics of the users service.
// All metrics register with the default registry on package init via promauto
// and are exposed on /metrics next to the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "users"

// ── Authentication metrics ───────────────────────────────────────────────────

// LoginAttemptsTotal counts POST /users/token outcomes.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshTotal counts POST /users/refresh_token outcomes.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of refresh token exchanges, by result.",
	},
	[]string{"result"},
)

// AuthResolutionsTotal counts how the authentication middleware resolved each
// request.
// Label:
//   - outcome: "authenticated", "no_credentials", "expired", "invalid_signature",
//     "malformed", "missing_subject", "unknown_user" or "repository_error"
var AuthResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_resolutions_total",
		Help:      "Total number of per-request authentication resolutions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Password hashing ─────────────────────────────────────────────────────────

// PasswordHashDuration measures bcrypt work executed on the hash pool.
// Label:
//   - op: "hash" or "verify"
var PasswordHashDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of password hash and verify operations.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
	[]string{"op"},
)

// HashQueueDepth is the number of hash jobs waiting for a worker.
var HashQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "hash_queue_depth",
		Help:      "Current number of password hash jobs waiting for a worker.",
	},
)

// ── Users and traffic ────────────────────────────────────────────────────────

// UsersCreatedTotal counts successful registrations.
// Label:
//   - role: the role assigned to the new user
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users registered, by role.",
	},
	[]string{"role"},
)

// RateLimitedTotal counts requests rejected with 429.
// Label:
//   - route: the matched route path
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter, by route.",
	},
	[]string{"route"},
)
