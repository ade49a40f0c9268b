package valueobjects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodsElapsed(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		period QuotaPeriod
		until  time.Time
		want   int
	}{
		{name: "day not yet", period: PeriodDay, until: start.Add(23 * time.Hour), want: 0},
		{name: "day exactly", period: PeriodDay, until: start.Add(24 * time.Hour), want: 1},
		{name: "day plus one hour", period: PeriodDay, until: start.Add(25 * time.Hour), want: 1},
		{name: "three days", period: PeriodDay, until: start.Add(72*time.Hour + time.Minute), want: 3},
		{name: "week fixed 168h", period: PeriodWeek, until: start.Add(169 * time.Hour), want: 1},
		{name: "month calendar step", period: PeriodMonth, until: time.Date(2024, 2, 15, 9, 30, 0, 0, time.UTC), want: 1},
		{name: "month just short", period: PeriodMonth, until: time.Date(2024, 2, 15, 9, 29, 0, 0, time.UTC), want: 0},
		{name: "year", period: PeriodYear, until: time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC), want: 1},
		{name: "lifetime never elapses", period: PeriodLifetime, until: start.AddDate(50, 0, 0), want: 0},
		{name: "until before start", period: PeriodDay, until: start.Add(-time.Hour), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.PeriodsElapsed(start, tt.until))
		})
	}
}

func TestPeriodBoundary(t *testing.T) {
	start := time.Date(2024, 1, 31, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, start.Add(24*time.Hour), PeriodDay.Boundary(start, 1))
	assert.Equal(t, start.Add(2*7*24*time.Hour), PeriodWeek.Boundary(start, 2))
	assert.Equal(t, start.AddDate(0, 1, 0), PeriodMonth.Boundary(start, 1))
	assert.Equal(t, start.AddDate(3, 0, 0), PeriodYear.Boundary(start, 3))
	assert.Equal(t, start, PeriodLifetime.Boundary(start, 5))
	assert.Equal(t, start, PeriodDay.Boundary(start, 0))
}

func TestParseQuotaPeriod(t *testing.T) {
	p, err := ParseQuotaPeriod("per_week")
	assert.NoError(t, err)
	assert.Equal(t, PeriodWeek, p)

	_, err = ParseQuotaPeriod("per_fortnight")
	assert.Error(t, err)
}
