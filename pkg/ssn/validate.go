package ssn

import (
	"strconv"
	"strings"
	"unicode"

	"natid/pkg/domain"
)

// Sex disambiguates which day-segment offset generation uses. Validation
// accepts either encoding, so Sex is never an input to Validate.
type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

// CheckDigitValidator decides whether a check digit is acceptable for the
// given 9-digit base. Hosts supply their own rule; the default placeholder
// accepts any ASCII digit.
type CheckDigitValidator func(base string, digit byte) bool

// ValidateOptions carries the optional knobs for Validate.
type ValidateOptions struct {
	// CheckDigit overrides the permissive default check-digit policy.
	CheckDigit CheckDigitValidator
}

// Validate reports whether candidate is structurally consistent with the
// given birth date. Every malformed input yields false; this function never
// panics, so it can sit directly in conditional logic.
//
// The pipeline short-circuits on the first failure:
// whitespace-stripped candidate must be exactly 10 ASCII digits, must not
// contain "666", and its day/month/year segments must match the codes derived
// from the birth date. The sequence must parse into 1..999 and the check
// digit must satisfy the configured strategy.
func Validate(candidate string, birthDate domain.BirthDate, opts *ValidateOptions) bool {
	if birthDate.IsZero() {
		return false
	}

	c := stripSpace(candidate)
	if len(c) != identifierLength || !allDigits(c) {
		return false
	}

	// The guard spans the full candidate, check digit included, and has no
	// public toggle on the validation side.
	if strings.Contains(c, forbiddenRun) {
		return false
	}

	day, ok := dayCodesFor(birthDate.Day())
	if !ok {
		return false
	}
	month, ok := monthCode(birthDate.Month(), birthDate.Year())
	if !ok {
		return false
	}

	if seg := c[0:2]; seg != day.male && seg != day.female {
		return false
	}
	if c[2:4] != month {
		return false
	}
	if c[4:6] != yearCode(birthDate.Year()) {
		return false
	}

	seq, err := strconv.Atoi(c[6:9])
	if err != nil || seq < minSequence || seq > maxSequence {
		return false
	}

	base, digit := c[:9], c[9]
	if opts != nil && opts.CheckDigit != nil {
		return opts.CheckDigit(base, digit)
	}
	return digit >= '0' && digit <= '9'
}

// ValidateString is Validate for callers holding the birth date as a string.
// An unparseable date yields false, preserving the never-panics contract.
func ValidateString(candidate, birthDate string, opts *ValidateOptions) bool {
	d, err := domain.ParseBirthDate(birthDate)
	if err != nil {
		return false
	}
	return Validate(candidate, d, opts)
}

// Components is the positional decomposition of a validated identifier.
type Components struct {
	Sex        Sex
	Sequence   int
	CheckDigit byte
}

// Decode validates candidate against birthDate and, on success, returns its
// decomposition: which sex the day-segment encodes, the sequence number, and
// the check digit. ok is false exactly when Validate would return false.
func Decode(candidate string, birthDate domain.BirthDate, opts *ValidateOptions) (Components, bool) {
	if !Validate(candidate, birthDate, opts) {
		return Components{}, false
	}
	c := stripSpace(candidate)
	day, _ := dayCodesFor(birthDate.Day())
	sex := Male
	if c[0:2] == day.female {
		sex = Female
	}
	seq, _ := strconv.Atoi(c[6:9])
	return Components{Sex: sex, Sequence: seq, CheckDigit: c[9]}, true
}

// stripSpace removes all Unicode whitespace, wherever it appears.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
