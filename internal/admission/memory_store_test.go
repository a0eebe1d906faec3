package admission

import (
	"context"
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestMemoryStore_HitCountsWithinWindow(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		w, _ := s.Hit(ctx, "api:test-ip", t0.Add(time.Duration(i)*time.Second), time.Minute)
		if w.Count != i {
			t.Fatalf("hit %d count = %d, want %d", i, w.Count, i)
		}
		if !w.Start.Equal(t0.Add(time.Second)) {
			t.Fatalf("hit %d window start moved to %s", i, w.Start)
		}
	}
}

func TestMemoryStore_WindowResets(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Hit(ctx, "k", t0, time.Minute)
	s.Hit(ctx, "k", t0.Add(30*time.Second), time.Minute)

	// Exactly one window later still belongs to the old window.
	w, _ := s.Hit(ctx, "k", t0.Add(time.Minute), time.Minute)
	if w.Count != 3 {
		t.Fatalf("count at window edge = %d, want 3", w.Count)
	}

	w, _ = s.Hit(ctx, "k", t0.Add(time.Minute+time.Millisecond), time.Minute)
	if w.Count != 1 || !w.Start.Equal(t0.Add(time.Minute+time.Millisecond)) {
		t.Fatalf("after window: count=%d start=%s, want fresh window", w.Count, w.Start)
	}
}

func TestMemoryStore_DifferentKeysIndependent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Hit(ctx, "api:ip-a", t0, time.Minute)
	s.Hit(ctx, "api:ip-a", t0, time.Minute)

	if w, _ := s.Hit(ctx, "api:ip-b", t0, time.Minute); w.Count != 1 {
		t.Fatalf("ip-b count = %d, want 1 (independent key)", w.Count)
	}
	if w, _ := s.Hit(ctx, "page:ip-a", t0, time.Minute); w.Count != 1 {
		t.Fatalf("page:ip-a count = %d, want 1 (independent class)", w.Count)
	}
}

func TestMemoryStore_RecordViolationEscalates(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	policy := AbusePolicy{Threshold: 3, Block: time.Hour, Cooldown: time.Hour}

	for i := 1; i <= 2; i++ {
		rec, _ := s.RecordViolation(ctx, "ip", t0, policy)
		if rec.Violations != i || rec.Blocked(t0) {
			t.Fatalf("violation %d: %+v, want unblocked", i, rec)
		}
	}

	rec, _ := s.RecordViolation(ctx, "ip", t0, policy)
	if !rec.BlockedUntil.Equal(t0.Add(time.Hour)) {
		t.Fatalf("blocked until = %s, want %s", rec.BlockedUntil, t0.Add(time.Hour))
	}

	until, _ := s.BlockedUntil(ctx, "ip", t0)
	if !until.Equal(t0.Add(time.Hour)) {
		t.Errorf("BlockedUntil = %s, want %s", until, t0.Add(time.Hour))
	}
	if until, _ := s.BlockedUntil(ctx, "other", t0); !until.IsZero() {
		t.Errorf("unknown ip BlockedUntil = %s, want zero", until)
	}
}

func TestMemoryStore_Sweep(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	policy := AbusePolicy{Threshold: 3, Block: time.Hour, Cooldown: time.Hour}

	s.Hit(ctx, "api:stale", t0, time.Minute)
	s.Hit(ctx, "api:recent", t0.Add(9*time.Minute), time.Minute)

	// blocked, block expires at t0+1h
	for i := 0; i < 3; i++ {
		s.RecordViolation(ctx, "blocked", t0, policy)
	}
	// unblocked, last violation at t0
	s.RecordViolation(ctx, "quiet", t0, policy)
	// unblocked, recent violation
	s.RecordViolation(ctx, "noisy", t0.Add(50*time.Minute), policy)

	now := t0.Add(61 * time.Minute)
	if err := s.Sweep(ctx, now, 2*time.Minute, time.Hour); err != nil {
		t.Fatal(err)
	}

	if _, ok := s.windows["api:stale"]; ok {
		t.Error("stale window should be purged")
	}
	if _, ok := s.windows["api:recent"]; ok {
		t.Error("window older than twice the window length should be purged")
	}
	if _, ok := s.abuse["blocked"]; ok {
		t.Error("expired block should be purged")
	}
	if _, ok := s.abuse["quiet"]; ok {
		t.Error("unblocked record past cooldown should be purged")
	}
	if _, ok := s.abuse["noisy"]; !ok {
		t.Error("record inside cooldown should survive")
	}
}
