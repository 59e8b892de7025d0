package utils

import (
	"fmt"
	"time"
)

// ISODate is the wire format for every date in the API: calendar date only,
// no time component.
const ISODate = "2006-01-02"

// FormatError reports malformed date text at a parse boundary. Callers
// reject the offending field and carry on; it never propagates as a crash.
type FormatError struct {
	Input string
	cause error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", e.Input)
}

func (e *FormatError) Unwrap() error { return e.cause }

// ParseDate round-trips "YYYY-MM-DD" to a day-precision value pinned to UTC
// midnight. Pinning to UTC keeps later day arithmetic timezone-independent.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ISODate, s, time.UTC)
	if err != nil {
		return time.Time{}, &FormatError{Input: s, cause: err}
	}
	return t, nil
}

// FormatDate is the inverse of ParseDate.
func FormatDate(t time.Time) string {
	return t.Format(ISODate)
}

// Day normalizes an arbitrary timestamp to its UTC calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a date by n whole calendar days (n may be negative).
// AddDate is calendar arithmetic, not elapsed-time arithmetic, so a DST
// transition cannot introduce an off-by-one day.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// CompareDates is a total order over calendar dates: -1 if a < b, 0 if the
// same day, 1 if a > b.
func CompareDates(a, b time.Time) int {
	da, db := Day(a), Day(b)
	switch {
	case da.Before(db):
		return -1
	case da.After(db):
		return 1
	default:
		return 0
	}
}

// NightsBetween counts occupied nights for a checkout-exclusive range:
// max(0, days from checkIn to checkOut). The checkout date itself is never
// an occupied night.
func NightsBetween(checkIn, checkOut time.Time) int {
	n := int(Day(checkOut).Sub(Day(checkIn)).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// DaysIn lists every date of the closed range [start, end], in order.
// Returns nil when start is after end.
func DaysIn(start, end time.Time) []time.Time {
	if CompareDates(start, end) > 0 {
		return nil
	}
	days := make([]time.Time, 0, NightsBetween(start, end)+1)
	for d := Day(start); !d.After(Day(end)); d = AddDays(d, 1) {
		days = append(days, d)
	}
	return days
}
