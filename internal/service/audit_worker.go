package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MsRupa/vidlook-app/internal/metrics"
)

const auditReportLimit = 50

// AgeAuditor finds accounts whose credited watch time exceeds their age.
type AgeAuditor interface {
	FindAgeViolations(ctx context.Context, now time.Time, limit int) (int, []string, error)
}

// AuditWorker is a periodic background job that checks the ledger's age
// invariant and exports the number of offending accounts.
type AuditWorker struct {
	auditor  AgeAuditor
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
}

// NewAuditWorker creates a worker that ticks every interval.
func NewAuditWorker(auditor AgeAuditor, interval time.Duration) *AuditWorker {
	return &AuditWorker{
		auditor:  auditor,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start runs one audit immediately, then every interval until ctx is done
// or Stop is called.
func (w *AuditWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("audit-worker: starting")

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Info().Msg("audit-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Info().Msg("audit-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *AuditWorker) Stop() {
	close(w.stopCh)
}

func (w *AuditWorker) tick(ctx context.Context) {
	start := time.Now()

	total, ids, err := w.auditor.FindAgeViolations(ctx, w.now(), auditReportLimit)
	metrics.AuditDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error().Err(err).Msg("audit-worker: query failed")
		return
	}

	metrics.InvariantViolations.Set(float64(total))
	for _, id := range ids {
		log.Warn().Str("account_id", id).Msg("audit-worker: account exceeds age invariant")
	}
	log.Info().Int("violations", total).Dur("elapsed", time.Since(start)).Msg("audit-worker: tick complete")
}
