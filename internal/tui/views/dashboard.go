package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"freelance-tracker/internal/api"
	"freelance-tracker/internal/services"
	"freelance-tracker/internal/tui/ui"
)

// DashboardModel is the model for the dashboard view
type DashboardModel struct {
	api    api.API
	svcs   *services.ServiceContainer
	styles ui.Styles
	keys   ui.KeyMap

	width   int
	height  int
	month   time.Time
	loading bool
	err     error

	stats     *services.MonthlyStats
	limits    []*services.LimitUsage
	breakdown *services.Breakdown
}

// NewDashboardModel creates a new dashboard view model
func NewDashboardModel(apiInstance api.API, svcs *services.ServiceContainer, styles ui.Styles, keys ui.KeyMap) DashboardModel {
	now := time.Now()
	return DashboardModel{
		api:    apiInstance,
		svcs:   svcs,
		styles: styles,
		keys:   keys,
		month:  time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local),
	}
}

// dashboardLoadedMsg is sent when the dashboard data is loaded
type dashboardLoadedMsg struct {
	stats     *services.MonthlyStats
	limits    []*services.LimitUsage
	breakdown *services.Breakdown
	err       error
}

// Init implements tea.Model
func (m DashboardModel) Init() tea.Cmd {
	return m.load()
}

// SetSize updates the view dimensions
func (m *DashboardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update implements tea.Model
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.PrevMonth):
			m.month = m.month.AddDate(0, -1, 0)
			return m, m.load()
		case key.Matches(msg, m.keys.NextMonth):
			m.month = m.month.AddDate(0, 1, 0)
			return m, m.load()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.load()
		}

	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.stats = msg.stats
		m.limits = msg.limits
		m.breakdown = msg.breakdown
	}
	return m, nil
}

// load fetches the dashboard data for the current month
func (m DashboardModel) load() tea.Cmd {
	month := m.month
	svcs := m.svcs
	return func() tea.Msg {
		ctx := context.Background()
		stats, err := svcs.ReportingService.GetMonthlyStats(ctx, month)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		limits, err := svcs.LimitService.CheckAll(ctx, month)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		breakdown, err := svcs.ReportingService.GetClientBreakdown(ctx, month)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		return dashboardLoadedMsg{stats: stats, limits: limits, breakdown: breakdown}
	}
}

// View implements tea.Model
func (m DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render(m.month.Format("January 2006")))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("error: " + m.err.Error()))
		return m.styles.Content.Render(b.String())
	}
	if m.stats == nil {
		return m.styles.Content.Render(b.String() + "Loading...")
	}

	b.WriteString(m.statLine("Income", fmt.Sprintf("%.2f", m.stats.TotalIncome)))
	b.WriteString(m.statLine("  hourly", fmt.Sprintf("%.2f", m.stats.HourlyIncome)))
	b.WriteString(m.statLine("  invoiced", fmt.Sprintf("%.2f", m.stats.RetainerIncome)))
	b.WriteString(m.statLine("Target", fmt.Sprintf("%.2f (%.0f%%)", m.stats.MonthlyTarget, m.stats.TargetProgress)))
	b.WriteString(m.statLine("Hours", fmt.Sprintf("%.1fh", m.stats.TotalHours)))
	if m.stats.AverageHourlyRate > 0 {
		b.WriteString(m.statLine("Average rate", fmt.Sprintf("%.2f", m.stats.AverageHourlyRate)))
	}
	b.WriteString(m.statLine("Work days", fmt.Sprintf("%d of %d elapsed", m.stats.WorkDaysElapsed, m.stats.WorkDaysInMonth)))

	if len(m.limits) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.ViewTitle.Render("Hour limits"))
		b.WriteString("\n")
		for _, u := range m.limits {
			line := fmt.Sprintf("%-24s %.1fh / %.1fh (%.0f%%)", u.ClientName, u.Used, u.Limit, u.Percent)
			switch u.Status {
			case services.LimitStatusCritical:
				b.WriteString(m.styles.Error.Render(line))
			case services.LimitStatusWarning:
				b.WriteString(m.styles.Warning.Render(line))
			default:
				b.WriteString(m.styles.Success.Render(line))
			}
			b.WriteString("\n")
		}
	}

	if m.breakdown != nil && len(m.breakdown.Rows) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.ViewTitle.Render("By client"))
		b.WriteString("\n")
		for _, row := range m.breakdown.Rows {
			b.WriteString(fmt.Sprintf("%-24s %6.1fh %10.2f %s\n",
				row.ClientName, row.Hours, row.Income,
				m.styles.RowMuted.Render(fmt.Sprintf("%.0f%%", row.Share))))
		}
	}

	return m.styles.Content.Render(b.String())
}

func (m DashboardModel) statLine(label, value string) string {
	return m.styles.StatLabel.Render(label) + m.styles.StatValue.Render(value) + "\n"
}
