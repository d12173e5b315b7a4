package core

import (
	"fmt"
	"time"
)

// Date is a calendar day. The time-of-day part is always midnight UTC.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar day in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// Today returns the current calendar day.
func Today() Date {
	return DateOf(time.Now().UTC())
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// MonthOf returns the month number (1-12).
func (d Date) MonthOf() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// AddMonths advances the date by n calendar months, clamping the day to the
// last day of the target month: Jan 31 + 1 month = Feb 28 (or 29). This
// matches statement-style month arithmetic rather than time.AddDate, which
// would roll Jan 31 over into March.
func (d Date) AddMonths(n int) Date {
	year, month, day := d.Date()
	target := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(target.Year(), target.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}
	return NewDate(target.Year(), int(target.Month()), day)
}

// AddDays advances the date by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time.AddDate(0, 0, n))
}

// After reports whether d is a later day than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Before reports whether d is an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// Equal reports whether d and other are the same day.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// Month returns the Month the date falls in.
func (d Date) Month() Month {
	return Month{Year: d.Year(), Month: d.MonthOf()}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("date cannot be zero")
	}
	return nil
}

// String formats the date as 2006-01-02.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Month is a calendar month within a year, used as a budget reference period.
type Month struct {
	Year  int
	Month int // 1-12
}

// CurrentMonth returns the month containing today.
func CurrentMonth() Month {
	return Today().Month()
}

// Next returns the following month.
func (m Month) Next() Month {
	if m.Month == 12 {
		return Month{Year: m.Year + 1, Month: 1}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Contains reports whether the date falls inside the month.
func (m Month) Contains(d Date) bool {
	return d.Year() == m.Year && d.MonthOf() == m.Month
}

// Before reports whether m precedes other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// String formats the month as 2006-01.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}
