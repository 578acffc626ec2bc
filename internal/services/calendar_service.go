package services

import (
	"context"
	"time"

	"freelance-tracker/internal/domain"
	"freelance-tracker/internal/repository/csvfile"
)

// calendarServiceImpl implements the CalendarService interface
type calendarServiceImpl struct {
	repo csvfile.Repository
	now  func() time.Time
}

// NewCalendarService creates a new CalendarService instance
func NewCalendarService(repo csvfile.Repository) CalendarService {
	return &calendarServiceImpl{
		repo: repo,
		now:  time.Now,
	}
}

// NewCalendarServiceWithClock creates a CalendarService with a fixed clock
func NewCalendarServiceWithClock(repo csvfile.Repository, now func() time.Time) CalendarService {
	return &calendarServiceImpl{
		repo: repo,
		now:  now,
	}
}

// IsWorkDay reports whether a date falls on a configured work weekday
// and is not explicitly marked off.
func (c *calendarServiceImpl) IsWorkDay(ctx context.Context, date time.Time) (bool, error) {
	settings, err := c.repo.GetSettings(ctx)
	if err != nil {
		return false, err
	}
	if !settings.IsWorkWeekday(date.Weekday()) {
		return false, nil
	}
	offDays, err := c.repo.ListNonWorkDays(ctx)
	if err != nil {
		return false, err
	}
	return !isMarkedOff(date, offDays), nil
}

// WorkDaysInMonth counts the working days of the month containing the date.
func (c *calendarServiceImpl) WorkDaysInMonth(ctx context.Context, month time.Time) (int, error) {
	settings, err := c.repo.GetSettings(ctx)
	if err != nil {
		return 0, err
	}
	offDays, err := c.repo.ListNonWorkDays(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	forEachDayOfMonth(month, func(day time.Time) {
		if settings.IsWorkWeekday(day.Weekday()) && !isMarkedOff(day, offDays) {
			count++
		}
	})
	return count, nil
}

// WorkDaysElapsed counts the working days that have passed in the month.
// A past month counts in full, a future month counts zero, and the
// current month counts through today inclusive.
func (c *calendarServiceImpl) WorkDaysElapsed(ctx context.Context, month time.Time) (int, error) {
	settings, err := c.repo.GetSettings(ctx)
	if err != nil {
		return 0, err
	}
	offDays, err := c.repo.ListNonWorkDays(ctx)
	if err != nil {
		return 0, err
	}
	today := domain.DateOnly(c.now())
	count := 0
	forEachDayOfMonth(month, func(day time.Time) {
		if day.After(today) {
			return
		}
		if settings.IsWorkWeekday(day.Weekday()) && !isMarkedOff(day, offDays) {
			count++
		}
	})
	return count, nil
}

// GetMonthSheet builds a day-by-day view of the month with logged hours.
func (c *calendarServiceImpl) GetMonthSheet(ctx context.Context, month time.Time) (*MonthSheet, error) {
	settings, err := c.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	offDays, err := c.repo.ListNonWorkDays(ctx)
	if err != nil {
		return nil, err
	}
	from, to := monthBounds(month)
	entries, err := c.repo.SearchTimeEntries(ctx, domain.SearchOptions{From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	hoursByDay := make(map[time.Time]float64)
	for _, e := range entries {
		hoursByDay[domain.DateOnly(e.Date)] += e.Hours
	}

	sheet := &MonthSheet{Month: monthStart(month)}
	forEachDayOfMonth(month, func(day time.Time) {
		cell := DayCell{Date: day, Hours: hoursByDay[day]}
		switch {
		case isMarkedOff(day, offDays):
			cell.Kind = DayNonWork
			cell.Reason = reasonFor(day, offDays)
		case !settings.IsWorkWeekday(day.Weekday()):
			cell.Kind = DayWeekend
		default:
			cell.Kind = DayWork
			sheet.WorkDayCount++
		}
		sheet.Cells = append(sheet.Cells, cell)
	})
	return sheet, nil
}

// monthStart truncates a time to the first day of its month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// monthBounds returns the first and last days of the month.
func monthBounds(t time.Time) (time.Time, time.Time) {
	start := monthStart(t)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// forEachDayOfMonth calls fn for every calendar day of the month.
func forEachDayOfMonth(month time.Time, fn func(day time.Time)) {
	start := monthStart(month)
	for day := start; day.Month() == start.Month(); day = day.AddDate(0, 0, 1) {
		fn(day)
	}
}

func isMarkedOff(date time.Time, offDays []*domain.NonWorkDay) bool {
	d := domain.DateOnly(date)
	for _, off := range offDays {
		if domain.DateOnly(off.Date).Equal(d) {
			return true
		}
	}
	return false
}

func reasonFor(date time.Time, offDays []*domain.NonWorkDay) string {
	d := domain.DateOnly(date)
	for _, off := range offDays {
		if domain.DateOnly(off.Date).Equal(d) {
			return off.Reason
		}
	}
	return ""
}
