// Package date provides a calendar-day value type.
//
// Publishers key everything by trading day, never by time of day, so the
// pipeline passes these around instead of time.Time. The zero value is not a
// valid date.
package date

import (
	"fmt"
	"time"
)

// Format is the canonical string form, used in file names and the 日期 column.
const Format = "2006-01-02"

// Date represents a calendar day with no time-of-day component.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date in local time.
func Today() Date { return New(time.Now().Date()) }

// FromTime truncates t to its calendar day.
func FromTime(t time.Time) Date { return New(t.Date()) }

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns the calendar year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// Add returns the date i days later (earlier for negative i).
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// Before reports whether d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Compare returns -1, 0, or +1 ordering d against x.
func (d Date) Compare(x Date) int { return d.time().Compare(x.time()) }

// String formats the date as 2006-01-02.
func (d Date) String() string { return d.time().Format(Format) }

// Compact formats the date as 20060102, the form the exchange publisher
// expects in query parameters.
func (d Date) Compact() string { return d.time().Format("20060102") }

// ROC formats the date in the Republic-of-China calendar (year minus 1911) as
// Y/MM/DD, the form the over-the-counter publisher expects.
func (d Date) ROC() string {
	return fmt.Sprintf("%d/%02d/%02d", d.y-1911, int(d.m), d.d)
}

// Parse parses a Date from its canonical 2006-01-02 form. Single-digit month
// and day are tolerated, since hand-edited files show up in practice.
func Parse(str string) (Date, error) {
	t, err := time.Parse("2006-1-2", str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, Format, err)
	}
	return New(t.Date()), nil
}

// MustParse is like Parse but panics on error. For tests and constants.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}
