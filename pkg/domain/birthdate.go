// Package domain defines the value objects shared across the module.
//
// BirthDate is the only aggregate here: a calendar date with no time
// component. Construction goes through NewBirthDate, ParseBirthDate, or
// BirthDateOf so an impossible calendar instant can never circulate.
//
// Domain Purity: this package contains only pure logic with no I/O,
// no context.Context, and no time.Now() calls.
package domain

import (
	"fmt"
	"strings"
	"time"

	dErrors "natid/pkg/domain-errors"
)

// BirthDate is a concrete calendar date (year, month, day-of-month).
//
// Invariants:
//   - A non-zero BirthDate always denotes a real calendar instant
//   - The zero value is invalid and recognizable via IsZero
type BirthDate struct {
	year  int
	month time.Month
	day   int
}

// NewBirthDate builds a BirthDate from components, rejecting dates that do
// not exist on the calendar (February 30th, month 13, and similar).
func NewBirthDate(year int, month time.Month, day int) (BirthDate, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return BirthDate{}, dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("%04d-%02d-%02d is not a calendar date", year, month, day))
	}
	return BirthDate{year: year, month: month, day: day}, nil
}

// BirthDateOf extracts the calendar date from a structured time value.
// The wall-clock portion and location are discarded.
func BirthDateOf(t time.Time) BirthDate {
	return BirthDate{year: t.Year(), month: t.Month(), day: t.Day()}
}

// birthDateLayouts are the accepted string forms: a plain calendar date,
// optionally followed by a wall-clock time with or without a zone.
// Interpretation is timezone-naive; only the date portion is kept.
var birthDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseBirthDate parses a date-formatted string into a BirthDate.
// Unparseable input is rejected with CodeInvalidInput, never corrected.
func ParseBirthDate(s string) (BirthDate, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return BirthDate{}, dErrors.New(dErrors.CodeInvalidInput, "birth date is empty")
	}
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return BirthDateOf(t), nil
		}
	}
	return BirthDate{}, dErrors.New(dErrors.CodeInvalidInput,
		fmt.Sprintf("unparseable birth date %q", trimmed))
}

// Year returns the 4-digit calendar year.
func (b BirthDate) Year() int { return b.year }

// Month returns the calendar month (January = 1).
func (b BirthDate) Month() time.Month { return b.month }

// Day returns the day of month (1-31).
func (b BirthDate) Day() int { return b.day }

// IsZero reports whether b is the invalid zero value.
func (b BirthDate) IsZero() bool {
	return b == BirthDate{}
}

// Time returns the date at midnight UTC.
func (b BirthDate) Time() time.Time {
	return time.Date(b.year, b.month, b.day, 0, 0, 0, 0, time.UTC)
}

// String renders the date as YYYY-MM-DD.
func (b BirthDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", b.year, int(b.month), b.day)
}

// Age returns full years lived at the given reference time. Uses calendar
// arithmetic (AddDate) for accurate birthday-boundary handling.
func (b BirthDate) Age(now time.Time) int {
	now = now.UTC()
	years := now.Year() - b.year
	if years > 0 && now.Before(b.Time().AddDate(years, 0, 0)) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// IsOver18 reports whether the person is 18 or older at the reference time.
//
// Example:
//
//	b, _ := domain.ParseBirthDate("2000-01-15")
//	now := time.Date(2018, 1, 15, 0, 0, 0, 0, time.UTC) // exactly 18th birthday
//	b.IsOver18(now) // true
func (b BirthDate) IsOver18(now time.Time) bool {
	adultAt := b.Time().AddDate(18, 0, 0)
	return !now.UTC().Before(adultAt)
}
