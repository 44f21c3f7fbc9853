// Package dedup suppresses re-processing of stream events delivered more
// than once. The streaming transport is at-least-once: a mention shows up on
// the main channel and again as its home-timeline echo with the same note ID.
package dedup

import (
	"sync"
	"time"
)

// DefaultWindow is comfortably larger than the duplicate-delivery latency
// observed between the mention and home-timeline channels.
const DefaultWindow = 30 * time.Second

// Lock is a best-effort, memory-only duplicate guard. It does not survive
// restarts; a restart implies stream resubscription with a fresh set.
type Lock struct {
	mu     sync.Mutex
	seen   map[string]time.Time // event ID -> expiry instant
	window time.Duration
	now    func() time.Time
}

func New(window time.Duration) *Lock {
	l := newLock(window, time.Now)
	go l.sweep()
	return l
}

func newLock(window time.Duration, now func() time.Time) *Lock {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Lock{
		seen:   make(map[string]time.Time),
		window: window,
		now:    now,
	}
}

// CheckAndLock reports whether eventID was already seen inside the window.
// If it was not, the ID is recorded and subsequent calls within the window
// report it as a duplicate. Check and insert happen under one lock so a
// duplicate and an expiry cannot race into a double accept.
func (l *Lock) CheckAndLock(eventID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if expiry, ok := l.seen[eventID]; ok && now.Before(expiry) {
		return true
	}
	l.seen[eventID] = now.Add(l.window)
	return false
}

// sweep drops expired entries so the set does not grow with traffic.
// Correctness does not depend on it: CheckAndLock ignores expired entries.
func (l *Lock) sweep() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for range ticker.C {
		l.sweepOnce()
	}
}

func (l *Lock) sweepOnce() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for id, expiry := range l.seen {
		if !now.Before(expiry) {
			delete(l.seen, id)
		}
	}
}
