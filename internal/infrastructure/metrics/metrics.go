// Package metrics defines and registers all custom Prometheus metrics for the
// interview session API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "interview"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsCreatedTotal counts sessions whose call and channel were provisioned.
// Label:
//   - difficulty: "easy", "medium", or "hard"
var SessionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_created_total",
		Help:      "Total number of sessions created, by difficulty.",
	},
	[]string{"difficulty"},
)

// SessionsJoinedTotal counts successful participant assignments.
var SessionsJoinedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_joined_total",
		Help:      "Total number of sessions joined by a participant.",
	},
)

// SessionsEndedTotal counts sessions moved to completed.
var SessionsEndedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_ended_total",
		Help:      "Total number of sessions completed by their host.",
	},
)

// SessionProvisioningFailuresTotal counts creates rolled back because the
// remote call or channel could not be provisioned.
var SessionProvisioningFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_provisioning_failures_total",
		Help:      "Total number of session creates rolled back after a provisioning failure.",
	},
)

// SessionTeardownFailuresTotal counts ends aborted because remote teardown failed.
var SessionTeardownFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_teardown_failures_total",
		Help:      "Total number of session ends aborted after a remote teardown failure.",
	},
)

// SessionDurationMinutes observes the derived duration of completed sessions.
var SessionDurationMinutes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "session_duration_minutes",
		Help:      "Duration of completed sessions in minutes.",
		Buckets:   []float64{5, 15, 30, 45, 60, 90, 120, 180},
	},
)

// ── Identity event metrics ────────────────────────────────────────────────────

// IdentityEventsProcessedTotal counts webhook deliveries handled successfully.
// Label:
//   - type: the event type (e.g. "user.created")
var IdentityEventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_events_processed_total",
		Help:      "Total number of identity-provider events successfully processed.",
	},
	[]string{"type"},
)

// IdentityEventsErrorsTotal counts deliveries that failed and will be redelivered.
var IdentityEventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_events_errors_total",
		Help:      "Total number of identity-provider events that failed processing.",
	},
	[]string{"type"},
)

// IdentityEventsDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new delivery, processed)
var IdentityEventsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_events_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// IdentitySyncFailuresTotal counts communication identity upserts/deletes
// that failed and were swallowed.
// Label:
//   - op: "upsert" or "delete"
var IdentitySyncFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_sync_failures_total",
		Help:      "Total number of communication identity sync failures.",
	},
	[]string{"op"},
)

// DispatcherQueueDepth tracks the number of events waiting in each worker channel.
var DispatcherQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dispatcher_queue_depth",
		Help:      "Current number of identity events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayRequestDuration measures calls to the communication provider.
// Labels:
//   - op: gateway operation (e.g. "create_call")
//   - outcome: "ok" or "error"
var GatewayRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_request_duration_seconds",
		Help:      "Duration of communication provider requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op", "outcome"},
)
