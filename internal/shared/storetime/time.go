// Package storetime provides utilities for store timezone calculations.
// All storage and transport use UTC. The store timezone is only used for
// presenting timestamps and for scheduling day-boundary work (the daily
// expiration sweep).
//
// Design principles:
// - All time storage is in UTC
// - Anything shown to a human is converted to the store timezone explicitly
// - Implicit Local timezone is prohibited
package storetime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone is the default store timezone.
const DefaultTimezone = "UTC"

var (
	storeLocation     *time.Location
	storeLocationOnce sync.Once
	initErr           error
)

// Init initializes the store timezone. Should be called once at startup.
// If tz is empty, defaults to UTC.
func Init(tz string) error {
	storeLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		storeLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the store timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize store timezone %q: %v", tz, err))
	}
}

// Location returns the store timezone location, auto-initializing to UTC
// when Init was never called.
func Location() *time.Location {
	if storeLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("storetime: failed to auto-initialize: %v", err))
		}
	}
	return storeLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ToStoreTimezone converts a UTC time to the store timezone for display.
func ToStoreTimezone(t time.Time) time.Time {
	return t.In(Location())
}

// ToUTC converts a time (any timezone) to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// StartOfDayUTC returns the start of day (00:00:00) in the store timezone,
// converted to UTC. Used for day-boundary queries.
func StartOfDayUTC(t time.Time) time.Time {
	st := t.In(Location())
	start := time.Date(st.Year(), st.Month(), st.Day(), 0, 0, 0, 0, Location())
	return start.UTC()
}

// EndOfDayUTC returns the end of day (23:59:59.999999999) in the store
// timezone, converted to UTC.
func EndOfDayUTC(t time.Time) time.Time {
	st := t.In(Location())
	end := time.Date(st.Year(), st.Month(), st.Day(), 23, 59, 59, 999999999, Location())
	return end.UTC()
}

// NextHourUTC returns the next occurrence of the given store-timezone hour
// (0-23), strictly after t, converted to UTC. Used by the sweep scheduler.
func NextHourUTC(t time.Time, hour int) time.Time {
	st := t.In(Location())
	next := time.Date(st.Year(), st.Month(), st.Day(), hour, 0, 0, 0, Location())
	if !next.After(st) {
		next = next.AddDate(0, 0, 1)
	}
	return next.UTC()
}

// FormatInStoreTimezone formats a UTC time as a string in the store timezone.
func FormatInStoreTimezone(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}

// ParseDateInStoreTimezone parses a date string (YYYY-MM-DD) as store
// timezone midnight, then returns the UTC equivalent.
func ParseDateInStoreTimezone(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", dateStr, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", dateStr, err)
	}
	return t.UTC(), nil
}
