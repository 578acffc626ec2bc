package cli

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DashboardCommand handles the dashboard command
type DashboardCommand struct {
	app          *App
	errorHandler *ErrorHandler
	styles       Styles
}

// NewDashboardCommand creates a new dashboard command handler
func NewDashboardCommand(app *App) *DashboardCommand {
	return &DashboardCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		styles:       stylesFor(app),
	}
}

// Execute prints the monthly overview: stats, limit usage and the
// per-client breakdown.
func (c *DashboardCommand) Execute(ctx context.Context, monthArg string) error {
	month, err := parseMonth(monthArg)
	if err != nil {
		return err
	}

	stats, err := c.app.services.ReportingService.GetMonthlyStats(ctx, month)
	if err != nil {
		return c.errorHandler.Handle("build dashboard", err)
	}

	fmt.Println(c.styles.Title.Render(month.Format("January 2006")))
	fmt.Printf("Income:        %s  (hourly %.2f, invoiced %.2f)\n",
		c.styles.Value.Render(fmt.Sprintf("%.2f", stats.TotalIncome)), stats.HourlyIncome, stats.RetainerIncome)
	fmt.Printf("Target:        %.2f  (%s)\n", stats.MonthlyTarget, c.renderProgress(stats.TargetProgress))
	fmt.Printf("Hours:         %.1fh", stats.TotalHours)
	if stats.AverageHourlyRate > 0 {
		fmt.Printf("  (avg rate %.2f)", stats.AverageHourlyRate)
	}
	fmt.Println()
	fmt.Printf("Work days:     %d of %d elapsed\n", stats.WorkDaysElapsed, stats.WorkDaysInMonth)
	if stats.DailyTarget > 0 {
		fmt.Printf("Daily target:  %.2f", stats.DailyTarget)
		if stats.DailyHoursTarget > 0 {
			fmt.Printf("  (%.1fh at the average rate)", stats.DailyHoursTarget)
		}
		fmt.Println()
	}
	if stats.TargetSoFar > 0 {
		fmt.Printf("Pace:          %.2f of %.2f expected by now\n", stats.TotalIncome, stats.TargetSoFar)
	}

	if err := c.printSeries(ctx, month); err != nil {
		return err
	}
	if err := c.printLimits(ctx, month); err != nil {
		return err
	}
	if err := c.printBreakdown(ctx, month); err != nil {
		return err
	}
	return c.printWeekly(ctx, month)
}

func (c *DashboardCommand) renderProgress(percent float64) string {
	text := fmt.Sprintf("%.0f%% of target", percent)
	if percent >= 100 {
		return c.styles.OK.Render(text)
	}
	return text
}

// printLimits lists every limited client's usage with a usage bar.
func (c *DashboardCommand) printLimits(ctx context.Context, month time.Time) error {
	usages, err := c.app.services.LimitService.CheckAll(ctx, month)
	if err != nil {
		return c.errorHandler.Handle("check limits", err)
	}
	if len(usages) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println(c.styles.Header.Render("Hour limits"))
	width := c.barWidth()
	for _, u := range usages {
		style := c.styles.StatusStyle(u.Status)
		fmt.Printf("%-30s %s %s\n", u.ClientName, bar(u.Percent, width),
			style.Render(fmt.Sprintf("%.1fh / %.1fh (%.0f%%)", u.Used, u.Limit, u.Percent)))
	}
	return nil
}

// barWidth sizes the usage bar to the configured table width.
func (c *DashboardCommand) barWidth() int {
	width := c.app.tableWidth() - 60
	if width < 10 {
		width = 10
	}
	if width > 40 {
		width = 40
	}
	return width
}

// printBreakdown lists each client's share of the month.
func (c *DashboardCommand) printBreakdown(ctx context.Context, month time.Time) error {
	breakdown, err := c.app.services.ReportingService.GetClientBreakdown(ctx, month)
	if err != nil {
		return c.errorHandler.Handle("build breakdown", err)
	}
	if len(breakdown.Rows) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println(c.styles.Header.Render("By client"))
	for _, row := range breakdown.Rows {
		fmt.Printf("%-30s %6.1fh %10.2f  %s\n", row.ClientName, row.Hours, row.Income,
			c.styles.Muted.Render(fmt.Sprintf("%.0f%%", row.Share)))
	}
	return nil
}

// printSeries draws the cumulative target and actual income of the
// month as sparklines.
func (c *DashboardCommand) printSeries(ctx context.Context, month time.Time) error {
	series, err := c.app.services.ReportingService.GetDailySeries(ctx, month)
	if err != nil {
		return c.errorHandler.Handle("build daily series", err)
	}
	if len(series.Points) == 0 {
		return nil
	}

	targets := make([]float64, len(series.Points))
	actuals := make([]float64, len(series.Points))
	for i, p := range series.Points {
		targets[i] = p.TargetCumulative
		actuals[i] = p.ActualCumulative
	}
	last := series.Points[len(series.Points)-1]
	max := last.TargetCumulative
	if last.ActualCumulative > max {
		max = last.ActualCumulative
	}

	fmt.Println()
	fmt.Println(c.styles.Header.Render("Target vs actual"))
	fmt.Printf("target %s %10.2f\n", spark(targets, max), last.TargetCumulative)
	fmt.Printf("actual %s %10.2f\n", spark(actuals, max), last.ActualCumulative)
	return nil
}

// printWeekly renders the hours-per-week pivot across active clients.
func (c *DashboardCommand) printWeekly(ctx context.Context, month time.Time) error {
	weekly, err := c.app.services.ReportingService.GetWeeklyBreakdown(ctx, month)
	if err != nil {
		return c.errorHandler.Handle("build weekly breakdown", err)
	}
	if len(weekly.Rows) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println(c.styles.Header.Render("Hours by week"))
	header := fmt.Sprintf("%-24s", "")
	for _, w := range weekly.Weeks {
		header += fmt.Sprintf(" %9s", w.Label)
	}
	fmt.Println(c.styles.Muted.Render(header + fmt.Sprintf(" %9s", "Total")))

	for _, row := range weekly.Rows {
		line := fmt.Sprintf("%-24s", row.ClientName)
		for _, h := range row.Hours {
			line += fmt.Sprintf(" %9s", weeklyCell(h))
		}
		fmt.Println(line + fmt.Sprintf(" %9s", weeklyCell(row.Total)))
	}

	totals := fmt.Sprintf("%-24s", "Total")
	for _, h := range weekly.Totals {
		totals += fmt.Sprintf(" %9s", weeklyCell(h))
	}
	fmt.Println(c.styles.Header.Render(totals + fmt.Sprintf(" %9s", weeklyCell(weekly.GrandTotal))))
	return nil
}

// weeklyCell formats a pivot cell, showing zero hours as a dash.
func weeklyCell(hours float64) string {
	if hours == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", hours)
}

// sparkLevels are the block characters used for sparklines, low to high.
var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// spark renders values as a sparkline scaled against max.
func spark(values []float64, max float64) string {
	var b strings.Builder
	for _, v := range values {
		idx := 0
		if max > 0 {
			idx = int(v / max * float64(len(sparkLevels)-1))
		}
		if idx < 0 {
			idx = 0
		}
		if idx > len(sparkLevels)-1 {
			idx = len(sparkLevels) - 1
		}
		b.WriteRune(sparkLevels[idx])
	}
	return b.String()
}

func bar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
