// Package clock derives calendar positions from the ledger's shared clock,
// falling back to the local wall clock with the same arithmetic.
package clock

import (
	"time"

	"github.com/julianstephens/horo/internal/constants"
)

const (
	millisPerSecond = 1000
	secondsPerDay   = 86400

	// Day 0 since the Unix epoch was a Thursday.
	epochWeekdayOffset = 4

	// 2024-01-01 is day 19723 since the epoch. Years are counted in fixed
	// 365-day steps from there, which drifts around leap days but matches the
	// contract's own arithmetic.
	yearAnchorDay = 19723
	yearAnchor    = 2024
)

// SourceKind records where a reading's timestamp came from.
type SourceKind string

const (
	SourceLedger SourceKind = "ledger"
	SourceLocal  SourceKind = "local"
)

// Reading is one observation of "what day is it" on the ledger.
type Reading struct {
	TimestampMs    int64
	DayOfWeek      time.Weekday
	DaysSinceEpoch int64
	WeekNumber     int64
	Year           int
	IsLoaded       bool
	Source         SourceKind
	Err            string // set when the ledger read failed and the fallback was used
}

// FromMillis derives a reading from a millisecond timestamp. Both the ledger and
// the local fallback go through this function.
func FromMillis(ms int64) Reading {
	days := floorDiv(floorDiv(ms, millisPerSecond), secondsPerDay)
	sinceSunday := floorMod(days+epochWeekdayOffset, 7)
	sunday := days - sinceSunday

	return Reading{
		TimestampMs:    ms,
		DayOfWeek:      time.Weekday(sinceSunday),
		DaysSinceEpoch: days,
		WeekNumber:     floorDiv(sunday, 7),
		Year:           yearAnchor + int(floorDiv(days-yearAnchorDay, 365)),
		IsLoaded:       true,
	}
}

// Time returns the reading's timestamp in UTC.
func (r Reading) Time() time.Time {
	return time.UnixMilli(r.TimestampMs).UTC()
}

// DateFor maps a weekday onto the reading's current Sunday-first week.
func (r Reading) DateFor(day time.Weekday) time.Time {
	d := r.DaysSinceEpoch + int64(day) - int64(r.DayOfWeek)
	return time.Unix(d*secondsPerDay, 0).UTC()
}

// DateStringFor is DateFor formatted as YYYY-MM-DD.
func (r Reading) DateStringFor(day time.Weekday) string {
	return r.DateFor(day).Format(constants.DateFormat)
}

// WeekStartDate returns the date that keys the weekly sign lock: the Monday
// obtained by stepping back to Sunday and forward one day. On a Sunday this is
// the following Monday, so Sunday belongs to the upcoming lock period.
func (r Reading) WeekStartDate() string {
	d := r.DaysSinceEpoch - int64(r.DayOfWeek) + 1
	return time.Unix(d*secondsPerDay, 0).UTC().Format(constants.DateFormat)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
