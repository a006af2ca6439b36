package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    Period
		expectedErr bool
	}{
		{
			name:     "intervalo",
			input:    "2024-05-01:2024-05-07",
			expected: Period{Start: mustDate("2024-05-01"), End: mustDate("2024-05-07")},
		},
		{
			name:     "dia único",
			input:    "2024-05-01",
			expected: Period{Start: mustDate("2024-05-01"), End: mustDate("2024-05-01")},
		},
		{name: "invertido", input: "2024-05-07:2024-05-01", expectedErr: true},
		{name: "formato inválido", input: "01/05/2024", expectedErr: true},
		{name: "vazio", input: "", expectedErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParsePeriod(tt.input)
			if tt.expectedErr {
				assert.ErrorIs(t, err, ErrInvalidPeriod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPeriod(t *testing.T) {
	p := Period{Start: mustDate("2024-05-01"), End: mustDate("2024-05-07")}

	assert.Equal(t, 7, p.Days())
	assert.True(t, p.Contains(mustDate("2024-05-01")))
	assert.True(t, p.Contains(mustDate("2024-05-07").Add(23*time.Hour)))
	assert.False(t, p.Contains(mustDate("2024-05-08")))
	assert.Equal(t, "2024-05-01:2024-05-07", p.String())

	union := p.Union(Period{Start: mustDate("2024-04-28"), End: mustDate("2024-05-03")})
	assert.Equal(t, mustDate("2024-04-28"), union.Start)
	assert.Equal(t, mustDate("2024-05-07"), union.End)

	assert.ErrorIs(t, Period{}.Validate(), ErrInvalidPeriod)
}

func TestPattern_Windows(t *testing.T) {
	anchor := mustDate("2024-05-31")

	tests := []struct {
		pattern        Pattern
		expectedBefore string
		expectedAfter  string
	}{
		{pattern: PatternDay, expectedBefore: "2024-05-30", expectedAfter: "2024-05-31"},
		{pattern: PatternWeek, expectedBefore: "2024-05-18:2024-05-24", expectedAfter: "2024-05-25:2024-05-31"},
		{pattern: PatternTwoWeek, expectedBefore: "2024-05-06:2024-05-18", expectedAfter: "2024-05-19:2024-05-31"},
	}

	for _, tt := range tests {
		t.Run(string(tt.pattern), func(t *testing.T) {
			before, after, err := tt.pattern.Windows(anchor)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedBefore, before.String())
			assert.Equal(t, tt.expectedAfter, after.String())
			assert.True(t, before.End.Before(after.Start))
		})
	}

	_, _, err := Pattern("month").Windows(anchor)
	assert.Error(t, err)
}

func TestParsePatterns(t *testing.T) {
	patterns, err := ParsePatterns("")
	require.NoError(t, err)
	assert.Equal(t, AllPatterns, patterns)

	patterns, err = ParsePatterns("week, day,week")
	require.NoError(t, err)
	assert.Equal(t, []Pattern{PatternWeek, PatternDay}, patterns)

	_, err = ParsePatterns("day,month")
	assert.Error(t, err)
}
