// Package metrics defines and registers all custom Prometheus metrics for the
// journal API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Collectors are registered with the default registry through promauto when
// the package is first imported; /metrics serves that registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "journal"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts session flows by outcome.
// Labels:
//   - flow: "register", "login", "refresh" or "logout"
//   - result: "success" or a short failure reason (e.g. "invalid_credentials", "throttled")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication flows, by flow and result.",
	},
	[]string{"flow", "result"},
)

// AuditEventsDroppedTotal counts audit events discarded because a worker queue was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of auth audit events dropped on a full dispatcher queue.",
	},
)

// AuditQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1")
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of auth events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Journal metrics ───────────────────────────────────────────────────────────

// JournalOperationsTotal counts journal use cases.
// Labels:
//   - operation: "list", "get", "create", "update" or "delete"
//   - scope: "admin" or "owner"
var JournalOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "journal_operations_total",
		Help:      "Total number of journal operations, by operation and caller scope.",
	},
	[]string{"operation", "scope"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestDuration measures request latency by route pattern.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests, by method, route and status code.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
