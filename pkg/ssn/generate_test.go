package ssn

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"natid/pkg/domain"
	dErrors "natid/pkg/domain-errors"
	"natid/pkg/testutil"
)

func seededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestGenerate_DeterministicWithExplicitOptions(t *testing.T) {
	tests := []struct {
		name      string
		birthDate string
		opts      GenerateOptions
		want      string
	}{
		{
			name:      "male with explicit sequence",
			birthDate: "1990-06-15",
			opts:      GenerateOptions{Sex: Male, Sequence: 123},
			want:      "2506901238",
		},
		{
			name:      "female with explicit sequence",
			birthDate: "1990-06-15",
			opts:      GenerateOptions{Sex: Female, Sequence: 456},
			want:      "6506904561",
		},
		{
			name:      "21st-century month offset",
			birthDate: "2005-05-10",
			opts:      GenerateOptions{Sex: Male, Sequence: 123},
			want:      "2025051230",
		},
		{
			name:      "19th-century month offset",
			birthDate: "1825-12-11",
			opts:      GenerateOptions{Sex: Male, Sequence: 12},
			want:      "2192250124",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(mustBirthDate(t, tt.birthDate), &tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerate_ValidateRoundTrip(t *testing.T) {
	testutil.Given(t, "a valid birth date in every supported century", func(t *testing.T) {
		dates := []string{
			"1806-01-01", "1850-07-31", "1925-12-11", "1990-06-15",
			"1999-09-09", "2000-01-01", "2005-05-10", "2150-02-28", "2299-12-31",
		}
		testutil.When(t, "an identifier is generated for each sex", func(t *testing.T) {
			for _, date := range dates {
				for _, sex := range []Sex{Male, Female} {
					id, err := Generate(mustBirthDate(t, date), &GenerateOptions{Sex: sex, Rand: seededRand(7)})
					require.NoError(t, err, "%s %s", date, sex)

					testutil.Then(t, fmt.Sprintf("%s/%s validates against the same date", date, sex), func(t *testing.T) {
						assert.True(t, ValidateString(id, date, nil))

						c, ok := Decode(id, mustBirthDate(t, date), nil)
						require.True(t, ok)
						assert.Equal(t, sex, c.Sex)
					})
				}
			}
		})
	})
}

func TestGenerate_RandomDefaultsAreSeedable(t *testing.T) {
	birthDate := mustBirthDate(t, "1990-06-15")

	first, err := Generate(birthDate, &GenerateOptions{Rand: seededRand(42)})
	require.NoError(t, err)
	second, err := Generate(birthDate, &GenerateOptions{Rand: seededRand(42)})
	require.NoError(t, err)
	assert.Equal(t, first, second, "same seed must reproduce sex and sequence choices")

	// Omitted sex must land on one of the two valid encodings.
	assert.Contains(t, []string{"25", "65"}, first[:2])
	assert.True(t, Validate(first, birthDate, nil))
}

func TestGenerate_SkipsForbiddenSequence(t *testing.T) {
	// Sequence 666 forms base 190999666; the guard must advance past it.
	id, err := Generate(mustBirthDate(t, "1999-09-09"), &GenerateOptions{Sex: Male, Sequence: 666})
	require.NoError(t, err)
	assert.Equal(t, "1909996676", id)
	assert.NotContains(t, id, "666")
	assert.True(t, ValidateString(id, "1999-09-09", nil))
}

func TestGenerate_NeverEmitsForbiddenRun(t *testing.T) {
	birthDate := mustBirthDate(t, "1960-06-06")
	for seed := uint64(0); seed < 50; seed++ {
		id, err := Generate(birthDate, &GenerateOptions{Rand: seededRand(seed)})
		require.NoError(t, err)
		assert.NotContains(t, id, "666", "seed %d", seed)
	}
}

func TestGenerate_AllowTripleSixCannotSurfaceTheRun(t *testing.T) {
	// Disabling the generator guard does not bypass validation, which
	// rejects the run unconditionally; the search simply moves on.
	id, err := Generate(mustBirthDate(t, "1999-09-09"), &GenerateOptions{
		Sex:            Male,
		Sequence:       666,
		AllowTripleSix: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "1909996676", id)
	assert.NotContains(t, id, "666")
}

func TestGenerate_SequenceWrapsAround(t *testing.T) {
	// Force sequence 999 to fail so the search must wrap to 1.
	opts := &GenerateOptions{
		Sex:      Male,
		Sequence: 999,
		CheckDigit: func(base string) byte {
			if strings.HasSuffix(base, "999") {
				return 'x'
			}
			return SumMod10(base)
		},
	}
	id, err := Generate(mustBirthDate(t, "1990-06-15"), opts)
	require.NoError(t, err)
	assert.Equal(t, "2506900013", id)
}

func TestGenerate_CustomCheckDigit(t *testing.T) {
	gen := func(base string) byte { return '7' }
	id, err := Generate(mustBirthDate(t, "1990-06-15"), &GenerateOptions{
		Sex:        Male,
		Sequence:   123,
		CheckDigit: gen,
	})
	require.NoError(t, err)
	assert.Equal(t, "2506901237", id)

	// A matching validator accepts it; the default strategy would not
	// object either, since any digit passes.
	opts := &ValidateOptions{CheckDigit: func(base string, digit byte) bool {
		return gen(base) == digit
	}}
	assert.True(t, ValidateString(id, "1990-06-15", opts))
}

func TestGenerate_Errors(t *testing.T) {
	valid := mustBirthDate(t, "1990-06-15")

	t.Run("zero birth date", func(t *testing.T) {
		_, err := Generate(domain.BirthDate{}, nil)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("year before supported span", func(t *testing.T) {
		_, err := Generate(mustBirthDate(t, "1750-06-15"), nil)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		assert.Contains(t, err.Error(), "supported span")
	})

	t.Run("year after supported span", func(t *testing.T) {
		_, err := Generate(mustBirthDate(t, "2300-01-01"), nil)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("sequence out of range", func(t *testing.T) {
		for _, seq := range []int{-5, 1000} {
			_, err := Generate(valid, &GenerateOptions{Sequence: seq})
			require.Error(t, err, "sequence %d", seq)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})

	t.Run("unknown sex", func(t *testing.T) {
		_, err := Generate(valid, &GenerateOptions{Sex: "other"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("unparseable date string", func(t *testing.T) {
		_, err := GenerateString("not-a-date", nil)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("exhaustion when the fixed prefix itself contains 666", func(t *testing.T) {
		// 1966-06-06 encodes to prefix 160666 (male) / 560666 (female):
		// every sequence yields a forbidden candidate.
		_, err := Generate(mustBirthDate(t, "1966-06-06"), &GenerateOptions{Sex: Male})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

		// Disabling the guard does not help: re-validation still rejects
		// the run, so the search exhausts the same way.
		_, err = Generate(mustBirthDate(t, "1966-06-06"), &GenerateOptions{Sex: Male, AllowTripleSix: true})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("exhaustion when no candidate can validate", func(t *testing.T) {
		// A non-digit check digit fails validation for every sequence.
		_, err := Generate(valid, &GenerateOptions{
			Sequence:   1,
			CheckDigit: func(string) byte { return 'x' },
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		assert.Contains(t, err.Error(), "forbidden pattern")
	})
}

func TestGenerateString_RoundTrip(t *testing.T) {
	id, err := GenerateString("1990-06-15T12:00:00Z", &GenerateOptions{Sex: Female, Sequence: 1})
	require.NoError(t, err)
	assert.Equal(t, "6506900017", id)
	assert.True(t, ValidateString(id, "1990-06-15", nil))
}
