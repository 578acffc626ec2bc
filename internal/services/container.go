package services

import (
	"freelance-tracker/internal/repository/csvfile"
)

// NewServiceContainer wires all services against a repository
func NewServiceContainer(repo csvfile.Repository) *ServiceContainer {
	calendar := NewCalendarService(repo)
	reporting := NewReportingService(repo, calendar)
	return &ServiceContainer{
		CalendarService:  calendar,
		LimitService:     NewLimitService(repo),
		ReportingService: reporting,
		ScenarioService:  NewScenarioService(repo, calendar, reporting),
	}
}
