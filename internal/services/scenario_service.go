package services

import (
	"context"
	"time"

	"freelance-tracker/internal/domain"
	"freelance-tracker/internal/repository/csvfile"
)

// scenarioServiceImpl implements the ScenarioService interface
type scenarioServiceImpl struct {
	repo      csvfile.Repository
	calendar  CalendarService
	reporting ReportingService
}

// NewScenarioService creates a new ScenarioService instance
func NewScenarioService(repo csvfile.Repository, calendar CalendarService, reporting ReportingService) ScenarioService {
	return &scenarioServiceImpl{
		repo:      repo,
		calendar:  calendar,
		reporting: reporting,
	}
}

// Project combines the month's actuals with hypothetical entries and
// recomputes the monthly statistics, the limit usage and the cumulative
// series over the combination. Nothing is persisted.
func (s *scenarioServiceImpl) Project(ctx context.Context, month time.Time, extra []ScenarioEntry) (*ScenarioResult, error) {
	base, err := s.reporting.GetMonthlyStats(ctx, month)
	if err != nil {
		return nil, err
	}

	// Contract total limits look past the month, so fetch everything
	// and narrow to the month where needed.
	allEntries, err := s.repo.SearchTimeEntries(ctx, domain.SearchOptions{})
	if err != nil {
		return nil, err
	}

	from, to := monthBounds(month)
	opts := domain.SearchOptions{From: &from, To: &to}
	invoices, err := s.repo.SearchInvoices(ctx, opts)
	if err != nil {
		return nil, err
	}
	clients, err := s.repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	combined := make([]*domain.TimeEntry, 0, len(allEntries)+len(extra))
	combined = append(combined, allEntries...)
	addedHours := 0.0
	for _, e := range extra {
		combined = append(combined, &domain.TimeEntry{
			Date:       monthStart(month),
			ClientName: e.ClientName,
			Hours:      e.Hours,
		})
		addedHours += e.Hours
	}

	monthly := make([]*domain.TimeEntry, 0, len(combined))
	for _, e := range combined {
		if e.InMonth(month.Year(), month.Month()) {
			monthly = append(monthly, e)
		}
	}

	data := &monthData{
		entries:  monthly,
		invoices: invoices,
		clients:  clientsByName(clients),
		settings: settings,
	}
	projected := computeMonthlyStats(month, data, base.WorkDaysInMonth, base.WorkDaysElapsed)

	var limits []*LimitUsage
	for _, client := range clients {
		if !client.Active {
			continue
		}
		if usage := limitUsageFor(client, combined, month); usage != nil {
			limits = append(limits, usage)
		}
	}

	sheet, err := s.calendar.GetMonthSheet(ctx, month)
	if err != nil {
		return nil, err
	}

	return &ScenarioResult{
		Base:        *base,
		Projected:   projected,
		AddedHours:  addedHours,
		AddedIncome: projected.TotalIncome - base.TotalIncome,
		Limits:      limits,
		Series:      buildDailySeries(month, data, sheet),
	}, nil
}
