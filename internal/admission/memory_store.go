package admission

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store. State is lost on restart.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*Window
	abuse   map[string]*AbuseRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*Window),
		abuse:   make(map[string]*AbuseRecord),
	}
}

func (s *MemoryStore) BlockedUntil(_ context.Context, ip string, _ time.Time) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.abuse[ip]; ok {
		return rec.BlockedUntil, nil
	}
	return time.Time{}, nil
}

func (s *MemoryStore) Hit(_ context.Context, key string, now time.Time, window time.Duration) (Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, exists := s.windows[key]
	if !exists || now.Sub(w.Start) > window {
		// New window
		w = &Window{Count: 1, Start: now}
		s.windows[key] = w
		return *w, nil
	}

	w.Count++
	return *w, nil
}

func (s *MemoryStore) RecordViolation(_ context.Context, ip string, now time.Time, policy AbusePolicy) (AbuseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.abuse[ip]
	if !ok {
		rec = &AbuseRecord{}
		s.abuse[ip] = rec
	}
	rec.Violations++
	rec.LastViolation = now
	if rec.Violations >= policy.Threshold {
		rec.BlockedUntil = now.Add(policy.Block)
	}
	return *rec, nil
}

func (s *MemoryStore) Sweep(_ context.Context, now time.Time, windowTTL, cooldown time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, w := range s.windows {
		if now.Sub(w.Start) > windowTTL {
			delete(s.windows, key)
		}
	}
	for ip, rec := range s.abuse {
		switch {
		case !rec.BlockedUntil.IsZero():
			if !rec.BlockedUntil.After(now) {
				delete(s.abuse, ip)
			}
		case now.Sub(rec.LastViolation) > cooldown:
			delete(s.abuse, ip)
		}
	}
	return nil
}

// Len returns the number of tracked windows and abuse records.
func (s *MemoryStore) Len() (windows, abuse int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows), len(s.abuse)
}
