// Package metrics holds the Prometheus collectors of the service. All
// collectors register with the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookmarks"

var (
	// HTTPRequestsTotal counts handled requests by route pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)

	// RateLimitedTotal counts requests rejected by a rate limit scope.
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by rate limiting",
		},
		[]string{"scope"},
	)

	// ReorderTotal counts reorder invocations by sibling kind and outcome
	// (noop, persisted, recovered).
	ReorderTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reorder",
			Name:      "total",
			Help:      "Reorder invocations by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// ReorderWrites counts individual position writes.
	ReorderWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reorder",
			Name:      "position_writes_total",
			Help:      "Position writes issued by reorders",
		},
		[]string{"kind"},
	)

	// TransferTotal counts exports and imports by outcome.
	TransferTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transfer",
			Name:      "total",
			Help:      "Export and import invocations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	// ImportedEntities counts rows inserted by imports.
	ImportedEntities = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transfer",
			Name:      "imported_entities_total",
			Help:      "Rows inserted by imports by entity",
		},
		[]string{"entity"},
	)

	// ShareResolveTotal counts share resolutions by resource type and outcome.
	ShareResolveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "share",
			Name:      "resolve_total",
			Help:      "Share token resolutions by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	// ShareCacheLookups counts share-token cache lookups by result (hit, miss, error).
	ShareCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "share",
			Name:      "cache_lookups_total",
			Help:      "Share token cache lookups by result",
		},
		[]string{"result"},
	)

	// SharesIssued counts issued share tokens by resource type.
	SharesIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "share",
			Name:      "issued_total",
			Help:      "Issued share tokens by type",
		},
		[]string{"type"},
	)
)

// Outcome labels shared by the counters above.
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeNoop      = "noop"
	OutcomeRecovered = "recovered"
	OutcomeNotFound  = "not_found"
	OutcomeExpired   = "expired"
)

// Outcome maps an error to OutcomeOK or OutcomeError.
func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
