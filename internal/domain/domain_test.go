package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_EffectiveLimitType(t *testing.T) {
	tests := []struct {
		name     string
		limit    LimitType
		expected LimitType
	}{
		{name: "should fall back to monthly for none", limit: LimitNone, expected: LimitMonthly},
		{name: "should fall back to monthly for empty", limit: "", expected: LimitMonthly},
		{name: "should keep monthly", limit: LimitMonthly, expected: LimitMonthly},
		{name: "should keep contract total", limit: LimitContractTotal, expected: LimitContractTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Client{LimitType: tt.limit}
			assert.Equal(t, tt.expected, c.EffectiveLimitType())
		})
	}
}

func TestClient_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		client   Client
		expected bool
	}{
		{
			name:     "should accept active hourly client",
			client:   NewClient("Acme Corp", 85, BillingHourly),
			expected: true,
		},
		{
			name:     "should accept zero rate retainer client",
			client:   NewClient("Retainer Client", 0, BillingRetainer),
			expected: true,
		},
		{
			name:     "should reject empty name",
			client:   NewClient("", 85, BillingHourly),
			expected: false,
		},
		{
			name:     "should reject negative rate",
			client:   NewClient("Acme Corp", -1, BillingHourly),
			expected: false,
		},
		{
			name:     "should reject unknown billing type",
			client:   Client{Name: "Acme Corp", BillingType: "Barter"},
			expected: false,
		},
		{
			name:     "should reject enabled limit with zero hours",
			client:   Client{Name: "Acme Corp", BillingType: BillingHourly, HasHourLimit: true},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.client.IsValid())
		})
	}
}

func TestTimeEntry_IsValid(t *testing.T) {
	valid := NewTimeEntry(time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local), "Acme Corp", 3.5)
	assert.True(t, valid.IsValid())

	tests := []struct {
		name   string
		modify func(e *TimeEntry)
	}{
		{name: "should reject empty client name", modify: func(e *TimeEntry) { e.ClientName = "" }},
		{name: "should reject zero date", modify: func(e *TimeEntry) { e.Date = time.Time{} }},
		{name: "should reject zero hours", modify: func(e *TimeEntry) { e.Hours = 0 }},
		{name: "should reject negative hours", modify: func(e *TimeEntry) { e.Hours = -2 }},
		{name: "should reject more than a day of hours", modify: func(e *TimeEntry) { e.Hours = 25 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.modify(&e)
			assert.False(t, e.IsValid())
		})
	}
}

func TestNewTimeEntry_TruncatesDate(t *testing.T) {
	withTime := time.Date(2026, 3, 15, 14, 30, 45, 0, time.Local)
	entry := NewTimeEntry(withTime, "Acme Corp", 1)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local), entry.Date)
}

func TestTimeEntry_InMonth(t *testing.T) {
	entry := NewTimeEntry(time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local), "Acme Corp", 1)
	assert.True(t, entry.InMonth(2026, time.March))
	assert.False(t, entry.InMonth(2026, time.April))
	assert.False(t, entry.InMonth(2025, time.March))
}

func TestInvoice_IsValid(t *testing.T) {
	valid := NewInvoice(time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local), "Retainer Client", 2000, IncomeRetainer)
	assert.True(t, valid.IsValid())

	tests := []struct {
		name   string
		modify func(inv *Invoice)
	}{
		{name: "should reject empty client name", modify: func(inv *Invoice) { inv.ClientName = "" }},
		{name: "should reject zero amount", modify: func(inv *Invoice) { inv.Amount = 0 }},
		{name: "should reject negative amount", modify: func(inv *Invoice) { inv.Amount = -50 }},
		{name: "should reject unknown income type", modify: func(inv *Invoice) { inv.Type = "Tips" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := valid
			tt.modify(&inv)
			assert.False(t, inv.IsValid())
		})
	}
}

func TestIncomeType_IsValid(t *testing.T) {
	for _, it := range []IncomeType{IncomeRetainer, IncomeFlatFee, IncomeBonus, IncomeOther} {
		assert.True(t, it.IsValid(), "%s should be valid", it)
	}
	assert.False(t, IncomeType("Gift").IsValid())
}

func TestSettings_Defaults(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 8000.0, s.MonthlyTarget)
	require.Len(t, s.WorkDays, 5)
	assert.True(t, s.IsWorkWeekday(time.Monday))
	assert.True(t, s.IsWorkWeekday(time.Friday))
	assert.False(t, s.IsWorkWeekday(time.Saturday))
	assert.False(t, s.IsWorkWeekday(time.Sunday))
}

func TestSettings_IsValid(t *testing.T) {
	assert.True(t, DefaultSettings().IsValid())
	assert.False(t, Settings{MonthlyTarget: -1, WorkDays: []time.Weekday{time.Monday}}.IsValid())
	assert.False(t, Settings{MonthlyTarget: 8000}.IsValid())
}

func TestSearchOptions_Matches(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.Local)
	name := "Acme Corp"

	tests := []struct {
		name     string
		opts     SearchOptions
		expected bool
	}{
		{name: "should match everything with zero options", opts: SearchOptions{}, expected: true},
		{name: "should match inside date range", opts: SearchOptions{From: &from, To: &to}, expected: true},
		{name: "should match inclusive lower bound", opts: SearchOptions{From: &date}, expected: true},
		{name: "should match inclusive upper bound", opts: SearchOptions{To: &date}, expected: true},
		{name: "should reject dates before the range", opts: SearchOptions{From: &to}, expected: false},
		{name: "should reject dates after the range", opts: SearchOptions{To: &from}, expected: false},
		{name: "should match exact client name", opts: SearchOptions{ClientName: &name}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.opts.Matches(date, "Acme Corp"))
		})
	}

	t.Run("should reject different client name", func(t *testing.T) {
		other := "Beta Ltd"
		assert.False(t, SearchOptions{ClientName: &other}.Matches(date, "Acme Corp"))
	})
}
