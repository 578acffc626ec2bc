package services

import (
	"context"
	"time"

	"freelance-tracker/internal/domain"
)

// MonthlyStats represents income and hours statistics for one month
type MonthlyStats struct {
	Month             time.Time `json:"month"`
	HourlyIncome      float64   `json:"hourly_income"`
	RetainerIncome    float64   `json:"retainer_income"`
	TotalIncome       float64   `json:"total_income"`
	TotalHours        float64   `json:"total_hours"`
	MonthlyTarget     float64   `json:"monthly_target"`
	TargetProgress    float64   `json:"target_progress"` // Percentage of the monthly target reached
	TargetSoFar       float64   `json:"target_so_far"`   // Daily target accrued over the elapsed work days
	AverageHourlyRate float64   `json:"average_hourly_rate"`
	DailyTarget       float64   `json:"daily_target"`       // Income needed per work day
	DailyHoursTarget  float64   `json:"daily_hours_target"` // Hours needed per work day at the average rate
	WorkDaysInMonth   int       `json:"work_days_in_month"`
	WorkDaysElapsed   int       `json:"work_days_elapsed"`
}

// SeriesPoint is one day in a cumulative target-versus-actual series
type SeriesPoint struct {
	Date             time.Time `json:"date"`
	TargetCumulative float64   `json:"target_cumulative"`
	ActualCumulative float64   `json:"actual_cumulative"`
}

// MonthlySeries represents the day-by-day progress of a month
type MonthlySeries struct {
	Month  time.Time     `json:"month"`
	Points []SeriesPoint `json:"points"`
}

// BreakdownRow represents one client's share of a month
type BreakdownRow struct {
	ClientName  string             `json:"client_name"`
	BillingType domain.BillingType `json:"billing_type"`
	Hours       float64            `json:"hours"`
	Income      float64            `json:"income"`
	Share       float64            `json:"share"` // Percentage of the month's total income
}

// Breakdown represents the per-client totals for one month
type Breakdown struct {
	Month       time.Time      `json:"month"`
	Rows        []BreakdownRow `json:"rows"`
	TotalHours  float64        `json:"total_hours"`
	TotalIncome float64        `json:"total_income"`
}

// WeekSpan is a Monday-start week overlapping a month
type WeekSpan struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// WeeklyRow represents one client's hours across the weeks of a month
type WeeklyRow struct {
	ClientName string    `json:"client_name"`
	Hours      []float64 `json:"hours"` // One value per week span
	Total      float64   `json:"total"`
}

// WeeklyBreakdown pivots a month's hours by client and week
type WeeklyBreakdown struct {
	Month      time.Time   `json:"month"`
	Weeks      []WeekSpan  `json:"weeks"`
	Rows       []WeeklyRow `json:"rows"`
	Totals     []float64   `json:"totals"` // Per-week totals across all clients
	GrandTotal float64     `json:"grand_total"`
}

// LimitStatus classifies how much of an hour limit has been used
type LimitStatus string

const (
	LimitStatusOK       LimitStatus = "ok"
	LimitStatusWarning  LimitStatus = "warning"  // At or above 75% of the limit
	LimitStatusCritical LimitStatus = "critical" // At or above 90% of the limit
)

// LimitUsage represents a client's consumption of its hour limit
type LimitUsage struct {
	ClientName string           `json:"client_name"`
	LimitType  domain.LimitType `json:"limit_type"`
	Limit      float64          `json:"limit"`
	Used       float64          `json:"used"`
	Remaining  float64          `json:"remaining"`
	Percent    float64          `json:"percent"`
	Status     LimitStatus      `json:"status"`
}

// DayKind classifies a calendar day
type DayKind string

const (
	DayWork    DayKind = "work"
	DayWeekend DayKind = "weekend"  // Weekday not in the configured work week
	DayNonWork DayKind = "non_work" // Explicitly marked off
)

// DayCell is one day in a month sheet
type DayCell struct {
	Date   time.Time `json:"date"`
	Kind   DayKind   `json:"kind"`
	Reason string    `json:"reason,omitempty"` // Why the day is off, when marked
	Hours  float64   `json:"hours"`            // Hours logged on the day
}

// MonthSheet represents a whole month's calendar with logged hours
type MonthSheet struct {
	Month        time.Time `json:"month"`
	Cells        []DayCell `json:"cells"`
	WorkDayCount int       `json:"work_day_count"`
}

// ScenarioEntry is a hypothetical time entry used for planning
type ScenarioEntry struct {
	ClientName string  `json:"client_name"`
	Hours      float64 `json:"hours"`
}

// ScenarioResult compares a month's actuals with a projection that
// includes hypothetical entries
type ScenarioResult struct {
	Base        MonthlyStats   `json:"base"`
	Projected   MonthlyStats   `json:"projected"`
	AddedHours  float64        `json:"added_hours"`
	AddedIncome float64        `json:"added_income"`
	Limits      []*LimitUsage  `json:"limits"` // Limit usage with the scenario hours included
	Series      *MonthlySeries `json:"series"` // Cumulative series with the scenario hours included
}

// CalendarService handles work day arithmetic
type CalendarService interface {
	// IsWorkDay reports whether a date is a working day
	IsWorkDay(ctx context.Context, date time.Time) (bool, error)

	// WorkDaysInMonth counts the working days of the month containing the date
	WorkDaysInMonth(ctx context.Context, month time.Time) (int, error)

	// WorkDaysElapsed counts the working days of the month that have passed
	WorkDaysElapsed(ctx context.Context, month time.Time) (int, error)

	// GetMonthSheet builds a day-by-day view of a month
	GetMonthSheet(ctx context.Context, month time.Time) (*MonthSheet, error)
}

// LimitService evaluates client hour limits
type LimitService interface {
	// CheckClient evaluates one client's limit usage for the month.
	// Returns nil when the client has no limit.
	CheckClient(ctx context.Context, client *domain.Client, month time.Time) (*LimitUsage, error)

	// CheckAll evaluates every active client with a limit
	CheckAll(ctx context.Context, month time.Time) ([]*LimitUsage, error)
}

// ReportingService handles monthly analytics
type ReportingService interface {
	GetMonthlyStats(ctx context.Context, month time.Time) (*MonthlyStats, error)
	GetDailySeries(ctx context.Context, month time.Time) (*MonthlySeries, error)
	GetClientBreakdown(ctx context.Context, month time.Time) (*Breakdown, error)
	GetWeeklyBreakdown(ctx context.Context, month time.Time) (*WeeklyBreakdown, error)
}

// ScenarioService projects monthly outcomes from hypothetical entries
type ScenarioService interface {
	Project(ctx context.Context, month time.Time, extra []ScenarioEntry) (*ScenarioResult, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	CalendarService  CalendarService
	LimitService     LimitService
	ReportingService ReportingService
	ScenarioService  ScenarioService
}
