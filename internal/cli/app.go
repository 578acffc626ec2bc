package cli

import (
	"fmt"
	"strings"
	"time"

	"freelance-tracker/internal/api"
	"freelance-tracker/internal/config"
	"freelance-tracker/internal/domain"
	"freelance-tracker/internal/services"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App represents the main CLI application
type App struct {
	api      api.API
	services *services.ServiceContainer
	config   *config.Config
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(apiInstance api.API, svcs *services.ServiceContainer, cfg *config.Config) *App {
	return &App{
		api:      apiInstance,
		services: svcs,
		config:   cfg,
	}
}

// NewAppWithDefaultRepository creates an application wired against the
// configured data directory. Used for production.
func NewAppWithDefaultRepository() (*App, error) {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, err
	}

	apiInstance := api.New(repo)
	return NewApp(apiInstance, services.NewServiceContainer(repo), cfg), nil
}

// Config returns the application configuration
func (a *App) Config() *config.Config {
	return a.config
}

// dateFormat returns the configured date display format
func (a *App) dateFormat() string {
	if a.config != nil && a.config.Display.DateFormat != "" {
		return a.config.Display.DateFormat
	}
	return "2006-01-02"
}

// tableWidth returns the configured table width
func (a *App) tableWidth() int {
	if a.config != nil && a.config.Display.TableWidth > 0 {
		return a.config.Display.TableWidth
	}
	return 80
}

// parseDate parses a user-supplied date argument. An empty string,
// "today" and "yesterday" are shortcuts; everything else must be
// YYYY-MM-DD.
func parseDate(arg string) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "today":
		return domain.DateOnly(timeNow()), nil
	case "yesterday":
		return domain.DateOnly(timeNow().AddDate(0, 0, -1)), nil
	}
	t, err := time.ParseInLocation("2006-01-02", arg, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", arg)
	}
	return t, nil
}

// parseMonth parses a user-supplied month argument. An empty string
// means the current month; everything else must be YYYY-MM.
func parseMonth(arg string) (time.Time, error) {
	if strings.TrimSpace(arg) == "" {
		now := timeNow()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local), nil
	}
	t, err := time.ParseInLocation("2006-01", arg, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", arg)
	}
	return t, nil
}
