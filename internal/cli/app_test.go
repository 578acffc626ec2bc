package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFixedNow(t *testing.T, now time.Time) {
	t.Helper()
	original := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = original })
}

func TestParseDate(t *testing.T) {
	withFixedNow(t, time.Date(2026, time.March, 15, 14, 30, 0, 0, time.Local))

	tests := []struct {
		name        string
		arg         string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "should default to today",
			arg:      "",
			expected: time.Date(2026, time.March, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "should accept today shortcut",
			arg:      "today",
			expected: time.Date(2026, time.March, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "should accept uppercase shortcut",
			arg:      "Yesterday",
			expected: time.Date(2026, time.March, 14, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "should parse explicit date",
			arg:      "2026-03-03",
			expected: time.Date(2026, time.March, 3, 0, 0, 0, 0, time.Local),
		},
		{
			name:        "should reject slash-separated date",
			arg:         "03/03/2026",
			expectError: true,
		},
		{
			name:        "should reject garbage",
			arg:         "not-a-date",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.arg)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseMonth(t *testing.T) {
	withFixedNow(t, time.Date(2026, time.March, 15, 14, 30, 0, 0, time.Local))

	tests := []struct {
		name        string
		arg         string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "should default to the current month",
			arg:      "",
			expected: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "should parse explicit month",
			arg:      "2025-11",
			expected: time.Date(2025, time.November, 1, 0, 0, 0, 0, time.Local),
		},
		{
			name:        "should reject full date",
			arg:         "2026-03-01",
			expectError: true,
		},
		{
			name:        "should reject garbage",
			arg:         "March",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMonth(tt.arg)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		name        string
		list        string
		expected    []time.Weekday
		expectError bool
	}{
		{
			name:     "should parse full names",
			list:     "Monday,Tuesday,Wednesday",
			expected: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday},
		},
		{
			name:     "should parse short names with spaces",
			list:     "mon, wed, fri",
			expected: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		},
		{
			name:     "should skip empty segments",
			list:     "mon,,fri",
			expected: []time.Weekday{time.Monday, time.Friday},
		},
		{
			name:        "should reject unknown day",
			list:        "mon,funday",
			expectError: true,
		},
		{
			name:        "should reject empty list",
			list:        "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseWeekdays(tt.list)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseScenarioPairs(t *testing.T) {
	t.Run("should parse a single pair", func(t *testing.T) {
		got, err := parseScenarioPairs([]string{"Acme Corp=5"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Acme Corp", got[0].ClientName)
		assert.Equal(t, 5.0, got[0].Hours)
	})

	t.Run("should parse multiple pairs with fractional hours", func(t *testing.T) {
		got, err := parseScenarioPairs([]string{"Acme Corp=2.5", "Beta LLC = 1.5"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Beta LLC", got[1].ClientName)
		assert.Equal(t, 1.5, got[1].Hours)
	})

	t.Run("should reject missing separator", func(t *testing.T) {
		_, err := parseScenarioPairs([]string{"Acme Corp 5"})
		assert.Error(t, err)
	})

	t.Run("should reject empty client name", func(t *testing.T) {
		_, err := parseScenarioPairs([]string{"=5"})
		assert.Error(t, err)
	})

	t.Run("should reject non-positive hours", func(t *testing.T) {
		_, err := parseScenarioPairs([]string{"Acme Corp=0"})
		assert.Error(t, err)
	})

	t.Run("should require at least one pair", func(t *testing.T) {
		_, err := parseScenarioPairs(nil)
		assert.Error(t, err)
	})
}
