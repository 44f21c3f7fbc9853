package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBonusDayBoundaryAtFiveJST(t *testing.T) {
	// 05:00 JST == 20:00 UTC the previous day.
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{
			name: "one minute before cutover counts toward the previous day",
			now:  time.Date(2024, 3, 9, 19, 59, 0, 0, time.UTC), // 04:59 JST Mar 10
			want: "2024-03-09",
		},
		{
			name: "cutover instant starts the new day",
			now:  time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC), // 05:00 JST Mar 10
			want: "2024-03-10",
		},
		{
			name: "midnight JST still belongs to the previous day",
			now:  time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC), // 00:00 JST Mar 10
			want: "2024-03-09",
		},
		{
			name: "midday JST",
			now:  time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC), // 12:00 JST Mar 10
			want: "2024-03-10",
		},
		{
			name: "year boundary",
			now:  time.Date(2023, 12, 31, 19, 59, 59, 0, time.UTC), // 04:59:59 JST Jan 1
			want: "2023-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BonusDay(tt.now))
		})
	}
}

func TestBonusDayDeterministic(t *testing.T) {
	instant := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	first := BonusDay(instant)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, BonusDay(instant))
	}
}

func TestBonusDayIgnoresInputLocation(t *testing.T) {
	utc := time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC)
	jst := utc.In(time.FixedZone("JST", 9*60*60))
	assert.Equal(t, BonusDay(utc), BonusDay(jst))
}

func TestDayDelta(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"2024-03-09", "2024-03-10", 1},
		{"2024-03-09", "2024-03-09", 0},
		{"2024-03-01", "2024-03-10", 9},
		{"2024-02-28", "2024-03-01", 2}, // leap year
		{"2024-12-31", "2025-01-01", 1},
		{"2024-03-10", "2024-03-09", -1},
	}

	for _, tt := range tests {
		got, err := dayDelta(tt.from, tt.to)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestDayDeltaRejectsMalformedKeys(t *testing.T) {
	_, err := dayDelta("not-a-date", "2024-03-10")
	require.Error(t, err)

	_, err = dayDelta("2024-03-10", "")
	require.Error(t, err)
}
