// Package ledger holds the login-bonus streak accounting: the bonus-day
// resolver and the transition that turns daily check-ins into persisted
// total/consecutive day counts.
package ledger

import (
	"context"
	"log"
	"sync"
	"time"
)

// Record is one user's streak state.
type Record struct {
	UserID          string
	Acct            string // username@host, updated on every check-in
	TotalDays       int
	ConsecutiveDays int
	LastBonusDate   string
}

// CheckInResult reports the counts after a check-in was applied.
type CheckInResult struct {
	TotalDays        int
	ConsecutiveDays  int
	AlreadyDoneToday bool
}

// Store persists streak records keyed by user ID.
type Store interface {
	// Get returns the record for userID, or nil when none exists.
	Get(ctx context.Context, userID string) (*Record, error)
	// Put inserts or replaces the record atomically.
	Put(ctx context.Context, record *Record) error
	// TopStreaks returns at most limit records ordered by consecutive days
	// descending, ties broken by total days descending.
	TopStreaks(ctx context.Context, limit int) ([]Record, error)
}

// Ledger applies check-ins to the store. The read-modify-write per user is
// serialized with a keyed mutex: the same user's check-in can arrive
// near-simultaneously on both stream channels.
type Ledger struct {
	store Store
	now   func() time.Time

	mu    sync.Mutex
	users map[string]*sync.Mutex
}

func New(store Store) *Ledger {
	return &Ledger{
		store: store,
		now:   time.Now,
		users: make(map[string]*sync.Mutex),
	}
}

func (l *Ledger) userLock(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.users[userID]
	if !ok {
		lock = &sync.Mutex{}
		l.users[userID] = lock
	}
	return lock
}

// RecordCheckIn advances the user's streak for the current bonus day.
// Repeats on the same day are idempotent no-ops reported via
// AlreadyDoneToday; a gap of more than one day resets the streak to 1 while
// the total keeps growing.
func (l *Ledger) RecordCheckIn(ctx context.Context, userID, acct string) (CheckInResult, error) {
	lock := l.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	today := BonusDay(l.now())

	record, err := l.store.Get(ctx, userID)
	if err != nil {
		return CheckInResult{}, err
	}

	if record == nil {
		record = &Record{
			UserID:          userID,
			Acct:            acct,
			TotalDays:       1,
			ConsecutiveDays: 1,
			LastBonusDate:   today,
		}
		if err := l.store.Put(ctx, record); err != nil {
			return CheckInResult{}, err
		}
		return CheckInResult{TotalDays: 1, ConsecutiveDays: 1}, nil
	}

	if record.LastBonusDate == today {
		if record.Acct != acct {
			record.Acct = acct
			if err := l.store.Put(ctx, record); err != nil {
				return CheckInResult{}, err
			}
		}
		return CheckInResult{
			TotalDays:        record.TotalDays,
			ConsecutiveDays:  record.ConsecutiveDays,
			AlreadyDoneToday: true,
		}, nil
	}

	delta, err := dayDelta(record.LastBonusDate, today)
	if err != nil {
		// An unreadable stored date cannot extend a streak; fall through to
		// the reset branch.
		log.Printf("Unreadable last bonus date for user %s: %v", userID, err)
		delta = -1
	}

	record.Acct = acct
	record.TotalDays++
	if delta == 1 {
		record.ConsecutiveDays++
	} else {
		record.ConsecutiveDays = 1
	}
	record.LastBonusDate = today

	if err := l.store.Put(ctx, record); err != nil {
		return CheckInResult{}, err
	}
	return CheckInResult{
		TotalDays:       record.TotalDays,
		ConsecutiveDays: record.ConsecutiveDays,
	}, nil
}

// TopStreaks returns the ranking, best streak first.
func (l *Ledger) TopStreaks(ctx context.Context, limit int) ([]Record, error) {
	return l.store.TopStreaks(ctx, limit)
}
