package ssn

import (
	"fmt"
	"time"
)

const (
	maleDayOffset   = 10
	femaleDayOffset = 50

	minSequence = 1
	maxSequence = 999

	identifierLength = 10

	// forbiddenRun must not appear anywhere in a candidate identifier.
	forbiddenRun = "666"
)

// centuryBand maps a 100-year span of birth years to the additive offset
// applied to the calendar month when forming the month-segment.
type centuryBand struct {
	from, to int
	offset   int
}

// centuryBands is the fixed offset table: contiguous, non-overlapping, and
// exhaustive over 1800-2299. Banding is by 4-digit calendar year; there is no
// 2-digit rollover heuristic, so 1999 takes offset 0 and 2000 takes 20.
var centuryBands = [5]centuryBand{
	{from: 1800, to: 1899, offset: 80},
	{from: 1900, to: 1999, offset: 0},
	{from: 2000, to: 2099, offset: 20},
	{from: 2100, to: 2199, offset: 40},
	{from: 2200, to: 2299, offset: 60},
}

// dayCodes holds both sexed encodings of a birth day.
type dayCodes struct {
	male   string
	female string
}

// dayCodesFor returns the 2-digit day-segment codes for a day of month,
// or ok=false for a day outside 1..31.
func dayCodesFor(day int) (dayCodes, bool) {
	if day < 1 || day > 31 {
		return dayCodes{}, false
	}
	return dayCodes{
		male:   fmt.Sprintf("%02d", day+maleDayOffset),
		female: fmt.Sprintf("%02d", day+femaleDayOffset),
	}, true
}

// centuryOffset returns the month-segment offset for a birth year,
// or ok=false for a year outside the supported 1800-2299 span.
func centuryOffset(year int) (int, bool) {
	for _, band := range centuryBands {
		if year >= band.from && year <= band.to {
			return band.offset, true
		}
	}
	return 0, false
}

// monthCode returns the 2-digit month-segment for a birth month and year,
// or ok=false when the year has no century band.
func monthCode(month time.Month, year int) (string, bool) {
	offset, ok := centuryOffset(year)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%02d", int(month)+offset), true
}

// yearCode returns the 2-digit year-segment, birth year mod 100.
func yearCode(year int) string {
	return fmt.Sprintf("%02d", year%100)
}
