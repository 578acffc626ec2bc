package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"freelance-tracker/internal/domain"
	"freelance-tracker/internal/repository/csvfile"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	repo     csvfile.Repository
	calendar CalendarService
	now      func() time.Time
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(repo csvfile.Repository, calendar CalendarService) ReportingService {
	return &reportingServiceImpl{
		repo:     repo,
		calendar: calendar,
		now:      time.Now,
	}
}

// NewReportingServiceWithClock creates a ReportingService with a fixed clock
func NewReportingServiceWithClock(repo csvfile.Repository, calendar CalendarService, now func() time.Time) ReportingService {
	return &reportingServiceImpl{
		repo:     repo,
		calendar: calendar,
		now:      now,
	}
}

// monthData bundles everything a monthly report needs
type monthData struct {
	entries  []*domain.TimeEntry
	invoices []*domain.Invoice
	clients  map[string]*domain.Client
	settings *domain.Settings
}

// loadMonth fetches the month's entries, invoices, clients and settings.
func (r *reportingServiceImpl) loadMonth(ctx context.Context, month time.Time) (*monthData, error) {
	from, to := monthBounds(month)
	opts := domain.SearchOptions{From: &from, To: &to}

	entries, err := r.repo.SearchTimeEntries(ctx, opts)
	if err != nil {
		return nil, err
	}
	invoices, err := r.repo.SearchInvoices(ctx, opts)
	if err != nil {
		return nil, err
	}
	clients, err := r.repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := r.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	return &monthData{
		entries:  entries,
		invoices: invoices,
		clients:  clientsByName(clients),
		settings: settings,
	}, nil
}

// GetMonthlyStats computes the income and hours summary for a month.
func (r *reportingServiceImpl) GetMonthlyStats(ctx context.Context, month time.Time) (*MonthlyStats, error) {
	data, err := r.loadMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	workDays, err := r.calendar.WorkDaysInMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	elapsed, err := r.calendar.WorkDaysElapsed(ctx, month)
	if err != nil {
		return nil, err
	}
	stats := computeMonthlyStats(month, data, workDays, elapsed)
	return &stats, nil
}

// GetDailySeries builds the cumulative target-versus-actual income
// series for each day of the month.
func (r *reportingServiceImpl) GetDailySeries(ctx context.Context, month time.Time) (*MonthlySeries, error) {
	data, err := r.loadMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	sheet, err := r.calendar.GetMonthSheet(ctx, month)
	if err != nil {
		return nil, err
	}
	return buildDailySeries(month, data, sheet), nil
}

// buildDailySeries accumulates the daily target on work days and the
// actual income day by day across the month sheet.
func buildDailySeries(month time.Time, data *monthData, sheet *MonthSheet) *MonthlySeries {
	dailyTarget := 0.0
	if sheet.WorkDayCount > 0 {
		dailyTarget = data.settings.MonthlyTarget / float64(sheet.WorkDayCount)
	}

	incomeByDay := make(map[time.Time]float64)
	for _, e := range data.entries {
		if c, ok := data.clients[e.ClientName]; ok && c.IsHourly() {
			incomeByDay[domain.DateOnly(e.Date)] += e.Hours * c.HourlyRate
		}
	}
	for _, inv := range data.invoices {
		incomeByDay[domain.DateOnly(inv.Date)] += inv.Amount
	}

	series := &MonthlySeries{Month: monthStart(month)}
	targetCum, actualCum := 0.0, 0.0
	for _, cell := range sheet.Cells {
		if cell.Kind == DayWork {
			targetCum += dailyTarget
		}
		actualCum += incomeByDay[cell.Date]
		series.Points = append(series.Points, SeriesPoint{
			Date:             cell.Date,
			TargetCumulative: targetCum,
			ActualCumulative: actualCum,
		})
	}
	return series
}

// GetClientBreakdown aggregates a month's hours and income per client.
// Hourly clients earn from logged hours, retainer clients from the
// month's invoices.
func (r *reportingServiceImpl) GetClientBreakdown(ctx context.Context, month time.Time) (*Breakdown, error) {
	data, err := r.loadMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	hoursByClient := make(map[string]float64)
	incomeByClient := make(map[string]float64)
	for _, e := range data.entries {
		hoursByClient[e.ClientName] += e.Hours
		if c, ok := data.clients[e.ClientName]; ok && c.IsHourly() {
			incomeByClient[e.ClientName] += e.Hours * c.HourlyRate
		}
	}
	for _, inv := range data.invoices {
		incomeByClient[inv.ClientName] += inv.Amount
	}

	names := make(map[string]bool)
	for name := range hoursByClient {
		names[name] = true
	}
	for name := range incomeByClient {
		names[name] = true
	}

	breakdown := &Breakdown{Month: monthStart(month)}
	for name := range names {
		row := BreakdownRow{
			ClientName: name,
			Hours:      hoursByClient[name],
			Income:     incomeByClient[name],
		}
		if c, ok := data.clients[name]; ok {
			row.BillingType = c.BillingType
		}
		breakdown.Rows = append(breakdown.Rows, row)
		breakdown.TotalHours += row.Hours
		breakdown.TotalIncome += row.Income
	}

	for i := range breakdown.Rows {
		if breakdown.TotalIncome > 0 {
			breakdown.Rows[i].Share = breakdown.Rows[i].Income / breakdown.TotalIncome * 100
		}
	}
	sort.Slice(breakdown.Rows, func(i, j int) bool {
		if breakdown.Rows[i].Income != breakdown.Rows[j].Income {
			return breakdown.Rows[i].Income > breakdown.Rows[j].Income
		}
		return breakdown.Rows[i].ClientName < breakdown.Rows[j].ClientName
	})
	return breakdown, nil
}

// GetWeeklyBreakdown pivots a month's hours by active client and week.
// Every active client gets a row, even with no hours; entries logged
// against inactive or unknown clients are left out.
func (r *reportingServiceImpl) GetWeeklyBreakdown(ctx context.Context, month time.Time) (*WeeklyBreakdown, error) {
	data, err := r.loadMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	weeks := weekSpansForMonth(month)
	breakdown := &WeeklyBreakdown{
		Month:  monthStart(month),
		Weeks:  weeks,
		Totals: make([]float64, len(weeks)),
	}

	byClient := make(map[string][]float64)
	for name, c := range data.clients {
		if c.Active {
			byClient[name] = make([]float64, len(weeks))
		}
	}
	for _, e := range data.entries {
		hours, ok := byClient[e.ClientName]
		if !ok {
			continue
		}
		idx := weekIndexFor(weeks, e.Date)
		if idx < 0 {
			continue
		}
		hours[idx] += e.Hours
	}

	names := make([]string, 0, len(byClient))
	for name := range byClient {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		row := WeeklyRow{ClientName: name, Hours: byClient[name]}
		for i, h := range row.Hours {
			row.Total += h
			breakdown.Totals[i] += h
		}
		breakdown.GrandTotal += row.Total
		breakdown.Rows = append(breakdown.Rows, row)
	}
	return breakdown, nil
}

// computeMonthlyStats derives the summary numbers from a month's data.
// Billable hours and hourly income count only entries that belong to an
// hourly client; retainer work earns through invoices instead.
func computeMonthlyStats(month time.Time, data *monthData, workDays, elapsed int) MonthlyStats {
	stats := MonthlyStats{
		Month:           monthStart(month),
		MonthlyTarget:   data.settings.MonthlyTarget,
		WorkDaysInMonth: workDays,
		WorkDaysElapsed: elapsed,
	}

	for _, e := range data.entries {
		if c, ok := data.clients[e.ClientName]; ok && c.IsHourly() {
			stats.TotalHours += e.Hours
			stats.HourlyIncome += e.Hours * c.HourlyRate
		}
	}
	for _, inv := range data.invoices {
		stats.RetainerIncome += inv.Amount
	}
	stats.TotalIncome = stats.HourlyIncome + stats.RetainerIncome

	rateSum, rateCount := 0.0, 0
	for _, c := range data.clients {
		if c.IsHourly() {
			rateSum += c.HourlyRate
			rateCount++
		}
	}
	if rateCount > 0 {
		stats.AverageHourlyRate = rateSum / float64(rateCount)
	}

	if stats.MonthlyTarget > 0 {
		stats.TargetProgress = stats.TotalIncome / stats.MonthlyTarget * 100
	}
	if workDays > 0 {
		stats.DailyTarget = stats.MonthlyTarget / float64(workDays)
	}
	stats.TargetSoFar = stats.DailyTarget * float64(elapsed)
	if stats.AverageHourlyRate > 0 {
		stats.DailyHoursTarget = stats.DailyTarget / stats.AverageHourlyRate
	}
	return stats
}

// clientsByName indexes clients by their name.
func clientsByName(clients []*domain.Client) map[string]*domain.Client {
	m := make(map[string]*domain.Client, len(clients))
	for _, c := range clients {
		m[c.Name] = c
	}
	return m
}

// weekSpansForMonth returns the Monday-start weeks overlapping a month.
func weekSpansForMonth(month time.Time) []WeekSpan {
	start, end := monthBounds(month)

	// Back up to the Monday on or before the 1st
	weekStart := start
	for weekStart.Weekday() != time.Monday {
		weekStart = weekStart.AddDate(0, 0, -1)
	}

	var weeks []WeekSpan
	for !weekStart.After(end) {
		weekEnd := weekStart.AddDate(0, 0, 6)
		weeks = append(weeks, WeekSpan{
			Start: weekStart,
			End:   weekEnd,
			Label: fmt.Sprintf("%s-%s", weekStart.Format("Jan 02"), weekEnd.Format("02")),
		})
		weekStart = weekStart.AddDate(0, 0, 7)
	}
	return weeks
}

// weekIndexFor finds the span containing a date, or -1.
func weekIndexFor(weeks []WeekSpan, date time.Time) int {
	d := domain.DateOnly(date)
	for i, w := range weeks {
		if !d.Before(w.Start) && !d.After(w.End) {
			return i
		}
	}
	return -1
}
