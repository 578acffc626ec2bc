package domain

import "time"

// NonWorkDay marks a specific date as a holiday or vacation day,
// overriding the regular work-day schedule from Settings.
type NonWorkDay struct {
	Date   time.Time
	Reason string
}

// IsValid checks if the non-work day has valid data.
func (n NonWorkDay) IsValid() bool {
	return !n.Date.IsZero()
}

// Settings holds the tracker-wide preferences: the monthly income
// target and which weekdays count as regular work days.
type Settings struct {
	MonthlyTarget float64
	WorkDays      []time.Weekday
}

// DefaultSettings returns the settings written on first run: an 8000
// monthly target and a Monday through Friday work week.
func DefaultSettings() Settings {
	return Settings{
		MonthlyTarget: 8000,
		WorkDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
	}
}

// IsWorkWeekday returns true if the given weekday is part of the
// regular work week.
func (s Settings) IsWorkWeekday(d time.Weekday) bool {
	for _, wd := range s.WorkDays {
		if wd == d {
			return true
		}
	}
	return false
}

// IsValid checks if the settings have valid data.
func (s Settings) IsValid() bool {
	return s.MonthlyTarget >= 0 && len(s.WorkDays) > 0
}
