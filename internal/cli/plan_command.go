package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"freelance-tracker/internal/services"
)

// PlanCommand handles the plan command
type PlanCommand struct {
	app          *App
	errorHandler *ErrorHandler
	styles       Styles
}

// NewPlanCommand creates a new plan command handler
func NewPlanCommand(app *App) *PlanCommand {
	return &PlanCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		styles:       stylesFor(app),
	}
}

// Execute projects the month with hypothetical hours. Arguments take
// the form "Client=hours", e.g. "Acme=12.5".
func (c *PlanCommand) Execute(ctx context.Context, monthArg string, pairs []string) error {
	month, err := parseMonth(monthArg)
	if err != nil {
		return err
	}

	extra, err := parseScenarioPairs(pairs)
	if err != nil {
		return err
	}

	result, err := c.app.services.ScenarioService.Project(ctx, month, extra)
	if err != nil {
		return c.errorHandler.Handle("plan scenario", err)
	}

	fmt.Println(c.styles.Title.Render("Scenario for " + month.Format("January 2006")))
	fmt.Printf("%-16s %12s %12s\n", "", "actual", "projected")
	fmt.Printf("%-16s %12.2f %12.2f\n", "Income", result.Base.TotalIncome, result.Projected.TotalIncome)
	fmt.Printf("%-16s %11.1fh %11.1fh\n", "Hours", result.Base.TotalHours, result.Projected.TotalHours)
	fmt.Printf("%-16s %11.0f%% %11.0f%%\n", "Target progress", result.Base.TargetProgress, result.Projected.TargetProgress)
	difference := result.Projected.TotalIncome - result.Projected.MonthlyTarget
	fmt.Printf("%-16s %25.2f\n", "vs target", difference)
	fmt.Println(c.styles.Muted.Render(fmt.Sprintf("adds %.1fh and %.2f income", result.AddedHours, result.AddedIncome)))

	if len(result.Limits) > 0 {
		fmt.Println()
		fmt.Println(c.styles.Header.Render("Hour limits with scenario"))
		for _, u := range result.Limits {
			style := c.styles.StatusStyle(u.Status)
			fmt.Printf("%-30s %s\n", u.ClientName,
				style.Render(fmt.Sprintf("%.1fh / %.1fh (%.0f%%), %.1fh remaining", u.Used, u.Limit, u.Percent, u.Remaining)))
		}
	}

	if result.Series != nil && len(result.Series.Points) > 0 {
		points := result.Series.Points
		last := points[len(points)-1]
		max := last.TargetCumulative
		if last.ActualCumulative > max {
			max = last.ActualCumulative
		}
		targets := make([]float64, len(points))
		actuals := make([]float64, len(points))
		for i, p := range points {
			targets[i] = p.TargetCumulative
			actuals[i] = p.ActualCumulative
		}
		fmt.Println()
		fmt.Println(c.styles.Header.Render("Target vs actual with scenario"))
		fmt.Printf("target %s %10.2f\n", spark(targets, max), last.TargetCumulative)
		fmt.Printf("actual %s %10.2f\n", spark(actuals, max), last.ActualCumulative)
	}
	return nil
}

// parseScenarioPairs parses "Client=hours" arguments.
func parseScenarioPairs(pairs []string) ([]services.ScenarioEntry, error) {
	var extra []services.ScenarioEntry
	for _, pair := range pairs {
		name, hoursStr, found := strings.Cut(pair, "=")
		if !found || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid scenario %q, expected Client=hours", pair)
		}
		hours, err := strconv.ParseFloat(strings.TrimSpace(hoursStr), 64)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("invalid hours in %q, expected a positive number", pair)
		}
		extra = append(extra, services.ScenarioEntry{
			ClientName: strings.TrimSpace(name),
			Hours:      hours,
		})
	}
	if len(extra) == 0 {
		return nil, fmt.Errorf("at least one Client=hours scenario is required")
	}
	return extra, nil
}
