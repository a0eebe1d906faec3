package admission

import (
	"context"
	"time"
)

// Window is the fixed rate window for one (class, IP) key.
type Window struct {
	Count int
	Start time.Time
}

// AbuseRecord tracks rate-limit violations for one IP.
type AbuseRecord struct {
	Violations    int
	BlockedUntil  time.Time
	LastViolation time.Time
}

// Blocked reports whether the record blocks requests at now.
func (r AbuseRecord) Blocked(now time.Time) bool {
	return r.BlockedUntil.After(now)
}

// AbusePolicy is the escalation rule applied on each violation.
type AbusePolicy struct {
	Threshold int
	Block     time.Duration
	Cooldown  time.Duration
}

// Store holds the gate's keyed counters. Implementations must be safe for
// concurrent use. Counts may drift between instances sharing a store; the
// gate does not rely on exact totals.
type Store interface {
	// BlockedUntil returns when ip's abuse block ends, or the zero time.
	BlockedUntil(ctx context.Context, ip string, now time.Time) (time.Time, error)

	// Hit counts one request against key. A window that started more than
	// window ago is reset and the request seeds a new one.
	Hit(ctx context.Context, key string, now time.Time, window time.Duration) (Window, error)

	// RecordViolation increments ip's violation count and blocks the IP once
	// the count reaches the policy threshold.
	RecordViolation(ctx context.Context, ip string, now time.Time, policy AbusePolicy) (AbuseRecord, error)

	// Sweep drops windows older than windowTTL, expired blocks, and unblocked
	// records with no violation within cooldown.
	Sweep(ctx context.Context, now time.Time, windowTTL, cooldown time.Duration) error
}
