package valueobjects

import (
	"fmt"
	"time"
)

// DurationUnit is the unit of a grant's validity window.
type DurationUnit string

const (
	UnitNever DurationUnit = "never"
	UnitYear  DurationUnit = "year"
	UnitMonth DurationUnit = "month"
	UnitWeek  DurationUnit = "week"
	UnitDay   DurationUnit = "day"
)

var validDurationUnits = map[DurationUnit]bool{
	UnitNever: true,
	UnitYear:  true,
	UnitMonth: true,
	UnitWeek:  true,
	UnitDay:   true,
}

func (u DurationUnit) IsValid() bool {
	return validDurationUnits[u]
}

func (u DurationUnit) String() string {
	return string(u)
}

// Duration is a grant validity window: a count of calendar units, or
// unlimited when the unit is "never".
type Duration struct {
	Number int          `json:"number"`
	Unit   DurationUnit `json:"unit"`
}

// NewDuration validates and builds a Duration. The number is ignored for the
// "never" unit and must be positive otherwise.
func NewDuration(number int, unit DurationUnit) (Duration, error) {
	if !unit.IsValid() {
		return Duration{}, fmt.Errorf("invalid duration unit: %s", unit)
	}
	if unit == UnitNever {
		return Duration{Unit: UnitNever}, nil
	}
	if number <= 0 {
		return Duration{}, fmt.Errorf("duration number must be positive, got %d", number)
	}
	return Duration{Number: number, Unit: unit}, nil
}

// Forever returns the unlimited duration.
func Forever() Duration {
	return Duration{Unit: UnitNever}
}

// IsUnlimited reports whether the duration never elapses.
func (d Duration) IsUnlimited() bool {
	return d.Unit == UnitNever
}

// ExpirationFrom computes the expiration of a window opening at start.
// Calendar arithmetic runs in UTC.
func (d Duration) ExpirationFrom(start time.Time) Expiration {
	start = start.UTC()
	switch d.Unit {
	case UnitYear:
		return At(start.AddDate(d.Number, 0, 0))
	case UnitMonth:
		return At(start.AddDate(0, d.Number, 0))
	case UnitWeek:
		return At(start.AddDate(0, 0, 7*d.Number))
	case UnitDay:
		return At(start.AddDate(0, 0, d.Number))
	default:
		return Never()
	}
}

func (d Duration) String() string {
	if d.IsUnlimited() {
		return "never expires"
	}
	unit := string(d.Unit)
	if d.Number != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s", d.Number, unit)
}

// Expiration is either a concrete UTC instant or "never". It replaces the
// timestamp-or-"never" sentinel with an explicit sum type.
type Expiration struct {
	never bool
	at    time.Time
}

// Never returns the expiration that never arrives.
func Never() Expiration {
	return Expiration{never: true}
}

// At returns an expiration at the given instant (normalized to UTC).
func At(t time.Time) Expiration {
	return Expiration{at: t.UTC()}
}

// IsNever reports whether the grant never expires.
func (e Expiration) IsNever() bool {
	return e.never
}

// Time returns the expiration instant and whether one exists.
func (e Expiration) Time() (time.Time, bool) {
	if e.never {
		return time.Time{}, false
	}
	return e.at, true
}

// Elapsed reports whether the expiration has passed at the given instant.
func (e Expiration) Elapsed(now time.Time) bool {
	if e.never {
		return false
	}
	return !now.UTC().Before(e.at)
}

// OrLater returns the later of the expiration instant and t. A "never"
// expiration yields t (used as the renewal start fallback).
func (e Expiration) OrLater(t time.Time) time.Time {
	t = t.UTC()
	if e.never || e.at.Before(t) {
		return t
	}
	return e.at
}

func (e Expiration) String() string {
	if e.never {
		return "never"
	}
	return e.at.Format(time.RFC3339)
}
