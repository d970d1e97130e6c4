package domain

import "time"

// DateLayout is the storage format of DayRecord.Date.
const DateLayout = "2006-01-02"

// Clock supplies the current instant and the location that defines "today".
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// SystemClock reads the wall clock. A nil Loc means UTC.
type SystemClock struct {
	Loc *time.Location
}

func (c SystemClock) Now() time.Time { return time.Now() }

func (c SystemClock) Location() *time.Location {
	if c.Loc == nil {
		return time.UTC
	}
	return c.Loc
}

// FixedClock always returns the same instant. Used by tests.
type FixedClock struct {
	At  time.Time
	Loc *time.Location
}

func (c FixedClock) Now() time.Time { return c.At }

func (c FixedClock) Location() *time.Location {
	if c.Loc == nil {
		return time.UTC
	}
	return c.Loc
}

// Today returns the calendar date of c.Now() in the clock's location.
func Today(c Clock) string {
	return FormatDate(c.Now(), c.Location())
}

// FormatDate renders t as YYYY-MM-DD in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}
