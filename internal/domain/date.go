package domain

import (
	"fmt"
	"time"
)

// Date is a calendar date with no time-of-day and no timezone. Scheduling
// arithmetic operates on calendar fields pinned to UTC, never on epoch
// offsets, so month and year addition keep correct calendar semantics.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for the given calendar fields, normalized
// (e.g. Feb 30 becomes Mar 1/2 the way time.Date normalizes).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf truncates t to its UTC calendar date.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("domain.ParseDate: %w", err)
	}
	return DateOf(t), nil
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return d.Time().Format(time.DateOnly)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns the date n days after d. Negative n moves backward.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// AddMonths returns the date n calendar months after d. When the target
// month is shorter than d.Day the result clamps to the last day of the
// target month (Jan 31 + 1 month = Feb 28, or Feb 29 in a leap year).
func (d Date) AddMonths(n int) Date {
	months := int(d.Month) - 1 + n
	year := d.Year + months/12
	month := time.Month(months%12 + 1)
	if months < 0 && months%12 != 0 {
		year--
		month += 12
	}

	day := d.Day
	if last := daysIn(year, month); day > last {
		day = last
	}

	return Date{Year: year, Month: month, Day: day}
}

// AddYears returns the date n years after d, clamping Feb 29 to Feb 28 in
// non-leap target years.
func (d Date) AddYears(n int) Date {
	day := d.Day
	if last := daysIn(d.Year+n, d.Month); day > last {
		day = last
	}
	return Date{Year: d.Year + n, Month: d.Month, Day: day}
}

// DaysUntil returns the number of days from d to other (negative if other
// is earlier).
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()) / (24 * time.Hour))
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// MarshalText renders the date as YYYY-MM-DD for JSON and text encoders.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(data []byte) error {
	parsed, err := ParseDate(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
