// Package metrics holds the Prometheus collectors shared by the gate, the
// services and the HTTP layer.
package metrics

import (
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vidlook_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vidlook_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	AdmissionDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidlook_admission_decisions_total",
			Help: "Admission gate decisions, by route class, verdict and reason.",
		},
		[]string{"class", "verdict", "reason"},
	)

	RewardOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidlook_reward_outcomes_total",
			Help: "Watch record outcomes, by outcome.",
		},
		[]string{"outcome"},
	)

	TokensAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidlook_tokens_awarded_total",
			Help: "VIDEO tokens credited, by sponsorship.",
		},
		[]string{"sponsored"},
	)

	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vidlook_cache_hits_total",
			Help: "Total Redis cache hits.",
		},
	)

	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vidlook_cache_misses_total",
			Help: "Total Redis cache misses.",
		},
	)

	InvariantViolations = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vidlook_ledger_age_invariant_violations",
			Help: "Accounts whose credited watch time exceeds their age, as of the last audit.",
		},
	)

	AuditDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vidlook_ledger_audit_duration_seconds",
			Help:    "Duration of ledger audit runs.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

var registerOnce sync.Once

// Register registers every collector with the default registry. Pool gauges
// are added when pool is non-nil. Safe to call more than once.
func Register(pool *pgxpool.Pool) {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestDuration,
			RequestsInFlight,
			AdmissionDecisions,
			RewardOutcomes,
			TokensAwarded,
			CacheHits,
			CacheMisses,
			InvariantViolations,
			AuditDuration,
		)

		// DB pool gauges read live stats from pgxpool
		if pool != nil {
			prometheus.MustRegister(
				prometheus.NewGaugeFunc(
					prometheus.GaugeOpts{
						Name: "vidlook_db_connection_pool_active",
						Help: "Number of active database connections.",
					},
					func() float64 { return float64(pool.Stat().AcquiredConns()) },
				),
				prometheus.NewGaugeFunc(
					prometheus.GaugeOpts{
						Name: "vidlook_db_connection_pool_idle",
						Help: "Number of idle database connections.",
					},
					func() float64 { return float64(pool.Stat().IdleConns()) },
				),
			)
		}
	})
}
