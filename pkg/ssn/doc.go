// Package ssn validates and generates 10-digit national identification
// numbers that encode a person's birth date.
//
// An identifier is positionally structured:
//
//	positions 1-2  day-segment:      birth day + 10 (male) or + 50 (female)
//	positions 3-4  month-segment:    calendar month + a per-century offset
//	positions 5-6  year-segment:     birth year mod 100
//	positions 7-9  sequence-segment: disambiguator in 1..999
//	position  10   check digit:      rule is officially undocumented
//
// The century offsets band birth years 1800-2299 into five 100-year ranges
// with offsets 80, 0, 20, 40, and 60; years outside that span have no valid
// encoding.
//
// Because the official check-digit algorithm is not public, both operations
// take a pluggable strategy. The defaults are documented placeholders only:
// Validate accepts any final digit, and Generate uses the decimal sum of the
// nine base digits modulo 10 so examples and tests stay reproducible. Neither
// is the real rule.
//
// Validate never panics and reports malformed input as false; Generate
// returns coded errors for unsatisfiable input. Identifiers whose first nine
// positions plus check digit would contain the run "666" are rejected.
package ssn
