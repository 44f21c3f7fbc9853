package ledger

import (
	"fmt"
	"time"
)

const dayFormat = "2006-01-02"

// The bonus day rolls over at 05:00 JST, not midnight: shift the instant to
// JST (+9h), pull it back five hours, then truncate to a date. A check-in at
// 04:59 JST still counts toward the previous day.
const (
	jstOffset    = 9 * time.Hour
	cutoverShift = 5 * time.Hour
)

// BonusDay resolves an instant to its canonical bonus-day key (YYYY-MM-DD).
// Pure and deterministic for a given instant.
func BonusDay(now time.Time) string {
	return now.UTC().Add(jstOffset - cutoverShift).Format(dayFormat)
}

// dayDelta counts whole calendar days from one bonus-day key to another.
// Both keys are read as dates at midnight UTC regardless of how they were
// resolved; the delta is a plain integer day count.
func dayDelta(from, to string) (int, error) {
	fromDate, err := time.ParseInLocation(dayFormat, from, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid bonus day %q: %w", from, err)
	}
	toDate, err := time.ParseInLocation(dayFormat, to, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid bonus day %q: %w", to, err)
	}
	return int(toDate.Sub(fromDate) / (24 * time.Hour)), nil
}
