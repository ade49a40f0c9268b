package valueobjects

import (
	"fmt"
	"time"
)

// QuotaPeriod is the recurring window a download-count limit is enforced
// against. PeriodLifetime ("per_period") is a permanent total: it never
// rolls over.
type QuotaPeriod string

const (
	PeriodDay      QuotaPeriod = "per_day"
	PeriodWeek     QuotaPeriod = "per_week"
	PeriodMonth    QuotaPeriod = "per_month"
	PeriodYear     QuotaPeriod = "per_year"
	PeriodLifetime QuotaPeriod = "per_period"
)

var validQuotaPeriods = map[QuotaPeriod]bool{
	PeriodDay:      true,
	PeriodWeek:     true,
	PeriodMonth:    true,
	PeriodYear:     true,
	PeriodLifetime: true,
}

func (p QuotaPeriod) IsValid() bool {
	return validQuotaPeriods[p]
}

func (p QuotaPeriod) String() string {
	return string(p)
}

// Label returns the display suffix for limit strings, e.g. "per day".
func (p QuotaPeriod) Label() string {
	switch p {
	case PeriodDay:
		return "per day"
	case PeriodWeek:
		return "per week"
	case PeriodMonth:
		return "per month"
	case PeriodYear:
		return "per year"
	default:
		return "total"
	}
}

// PeriodsElapsed returns the count of whole quota periods between start and
// until, floored. Boundaries are anchored at start: days and weeks are fixed
// 24h/168h windows, months and years step on the calendar in UTC. The
// lifetime period never elapses.
func (p QuotaPeriod) PeriodsElapsed(start, until time.Time) int {
	start, until = start.UTC(), until.UTC()
	if !until.After(start) {
		return 0
	}

	switch p {
	case PeriodDay:
		return int(until.Sub(start) / (24 * time.Hour))
	case PeriodWeek:
		return int(until.Sub(start) / (7 * 24 * time.Hour))
	case PeriodMonth:
		months := (until.Year()-start.Year())*12 + int(until.Month()) - int(start.Month())
		if months < 0 {
			return 0
		}
		if start.AddDate(0, months, 0).After(until) {
			months--
		}
		if months < 0 {
			return 0
		}
		return months
	case PeriodYear:
		years := until.Year() - start.Year()
		if years < 0 {
			return 0
		}
		if start.AddDate(years, 0, 0).After(until) {
			years--
		}
		if years < 0 {
			return 0
		}
		return years
	default:
		return 0
	}
}

// Boundary returns the instant closing the nth period after start (n whole
// periods elapsed). For the lifetime period the boundary is start itself.
func (p QuotaPeriod) Boundary(start time.Time, n int) time.Time {
	start = start.UTC()
	if n <= 0 {
		return start
	}
	switch p {
	case PeriodDay:
		return start.Add(time.Duration(n) * 24 * time.Hour)
	case PeriodWeek:
		return start.Add(time.Duration(n) * 7 * 24 * time.Hour)
	case PeriodMonth:
		return start.AddDate(0, n, 0)
	case PeriodYear:
		return start.AddDate(n, 0, 0)
	default:
		return start
	}
}

// ParseQuotaPeriod validates a raw string into a QuotaPeriod.
func ParseQuotaPeriod(raw string) (QuotaPeriod, error) {
	p := QuotaPeriod(raw)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid quota period: %q", raw)
	}
	return p, nil
}
