package ssn

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"natid/pkg/domain"
	dErrors "natid/pkg/domain-errors"
)

// CheckDigitGenerator produces a check digit for a 9-digit base.
type CheckDigitGenerator func(base string) byte

// GenerateOptions carries the optional knobs for Generate. The zero value
// means: random sex, random starting sequence, SumMod10 check digits, and the
// forbidden-pattern guard active.
type GenerateOptions struct {
	// Sex selects the day-segment encoding; empty picks male or female
	// uniformly at random.
	Sex Sex

	// Sequence is the starting sequence number in 1..999; zero picks a
	// random starting point. The search wraps around from 999 to 1.
	Sequence int

	// CheckDigit overrides the SumMod10 placeholder strategy.
	CheckDigit CheckDigitGenerator

	// AllowTripleSix disables the generator's own "666" guard. Candidates
	// are still re-validated, and validation rejects the run
	// unconditionally, so the toggle cannot surface a "666" identifier.
	AllowTripleSix bool

	// Rand is the randomness source for the sex and starting-sequence
	// choices; nil uses the shared math/rand/v2 source. Supply a seeded
	// source for deterministic output.
	Rand *rand.Rand
}

// SumMod10 is the default check-digit strategy: the decimal sum of the nine
// base digits modulo 10. It exists purely to make examples and tests
// reproducible; it is NOT the official algorithm, which is undocumented.
func SumMod10(base string) byte {
	sum := 0
	for i := 0; i < len(base); i++ {
		sum += int(base[i] - '0')
	}
	return byte('0' + sum%10)
}

// Generate synthesizes an identifier consistent with the given birth date.
//
// It derives the fixed day/month/year prefix, then enumerates all 999
// sequence values starting from the chosen point (wrapping 999 -> 1),
// accepting the first candidate that clears the forbidden-pattern guard and
// re-validates with a strategy wrapping the same check-digit generator.
//
// Errors carry CodeInvalidInput for caller-input failures (bad date, year
// outside 1800-2299) and CodeInvariantViolation when every sequence value is
// exhausted without an admissible candidate.
func Generate(birthDate domain.BirthDate, opts *GenerateOptions) (string, error) {
	if opts == nil {
		opts = &GenerateOptions{}
	}
	if birthDate.IsZero() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid birth date")
	}

	day, ok := dayCodesFor(birthDate.Day())
	if !ok {
		// Unreachable for a real calendar date, but guarded.
		return "", dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("birth day %d outside 1..31", birthDate.Day()))
	}
	month, ok := monthCode(birthDate.Month(), birthDate.Year())
	if !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("birth year %d outside supported span 1800..2299", birthDate.Year()))
	}
	year := yearCode(birthDate.Year())

	daySeg := day.male
	switch opts.Sex {
	case Male:
	case Female:
		daySeg = day.female
	case "":
		if intN(opts.Rand, 2) == 1 {
			daySeg = day.female
		}
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("sex must be %q or %q", Male, Female))
	}

	seq := opts.Sequence
	switch {
	case seq == 0:
		seq = minSequence + intN(opts.Rand, maxSequence)
	case seq < minSequence || seq > maxSequence:
		return "", dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("sequence %d outside %d..%d", seq, minSequence, maxSequence))
	}

	gen := opts.CheckDigit
	if gen == nil {
		gen = SumMod10
	}
	reValidate := &ValidateOptions{
		CheckDigit: func(base string, digit byte) bool {
			return gen(base) == digit
		},
	}

	for attempt := 0; attempt < maxSequence; attempt++ {
		base := daySeg + month + year + fmt.Sprintf("%03d", seq)
		candidate := base + string(gen(base))

		guarded := !opts.AllowTripleSix && strings.Contains(candidate, forbiddenRun)
		if !guarded && Validate(candidate, birthDate, reValidate) {
			return candidate, nil
		}

		if seq++; seq > maxSequence {
			seq = minSequence
		}
	}

	return "", dErrors.New(dErrors.CodeInvariantViolation,
		"unable to generate identifier without forbidden pattern")
}

// GenerateString is Generate for callers holding the birth date as a string.
func GenerateString(birthDate string, opts *GenerateOptions) (string, error) {
	d, err := domain.ParseBirthDate(birthDate)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid birth date")
	}
	return Generate(d, opts)
}

// intN draws from the supplied source when present, else the shared one.
func intN(r *rand.Rand, n int) int {
	if r != nil {
		return r.IntN(n)
	}
	return rand.IntN(n)
}
