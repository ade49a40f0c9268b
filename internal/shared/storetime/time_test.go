package storetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The package auto-initializes to UTC; every test here relies on that
// default so the expectations stay deterministic.

func TestNextHourUTC(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{
			name: "later today",
			now:  time.Date(2026, 3, 15, 1, 30, 0, 0, time.UTC),
			hour: 3,
			want: time.Date(2026, 3, 15, 3, 0, 0, 0, time.UTC),
		},
		{
			name: "already passed rolls to tomorrow",
			now:  time.Date(2026, 3, 15, 4, 0, 0, 0, time.UTC),
			hour: 3,
			want: time.Date(2026, 3, 16, 3, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly on the hour rolls forward",
			now:  time.Date(2026, 3, 15, 3, 0, 0, 0, time.UTC),
			hour: 3,
			want: time.Date(2026, 3, 16, 3, 0, 0, 0, time.UTC),
		},
		{
			name: "midnight hour",
			now:  time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC),
			hour: 0,
			want: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextHourUTC(tt.now, tt.hour)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.After(tt.now), "next occurrence is strictly after now")
		})
	}
}

func TestDayBoundaries(t *testing.T) {
	at := time.Date(2026, 3, 15, 13, 45, 12, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), StartOfDayUTC(at))
	assert.Equal(t, time.Date(2026, 3, 15, 23, 59, 59, 999999999, time.UTC), EndOfDayUTC(at))
}

func TestParseDateInStoreTimezone(t *testing.T) {
	got, err := ParseDateInStoreTimezone("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDateInStoreTimezone("15/03/2026")
	assert.Error(t, err)
}
