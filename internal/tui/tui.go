// Package tui provides the terminal user interface for the ft application.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"freelance-tracker/internal/api"
	"freelance-tracker/internal/services"
	"freelance-tracker/internal/tui/ui"
	"freelance-tracker/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabDashboard Tab = iota
	TabEntries
	TabClients
)

var tabNames = []string{"Dashboard", "Entries", "Clients"}

// Model is the root TUI model
type Model struct {
	api  api.API
	svcs *services.ServiceContainer

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool

	// View models
	dashboardView views.DashboardModel
	entriesView   views.EntriesModel
	clientsView   views.ClientsModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model
func New(apiInstance api.API, svcs *services.ServiceContainer) Model {
	themeProvider := ui.NewThemeProvider(ui.DefaultTheme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		api:           apiInstance,
		svcs:          svcs,
		activeTab:     TabDashboard,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		dashboardView: views.NewDashboardModel(apiInstance, svcs, styles, keys),
		entriesView:   views.NewEntriesModel(apiInstance, svcs, styles, keys),
		clientsView:   views.NewClientsModel(apiInstance, svcs, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dashboardView.Init(),
		m.clientsView.Init(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While the entries form is open, character keys belong to the
		// text inputs rather than to global shortcuts.
		capturing := m.isCapturingKeys()

		switch {
		case key.Matches(msg, m.keys.Quit) && !capturing:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !capturing:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab) && !capturing:
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.PrevTab) && !capturing:
			m.activeTab = Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab1) && !capturing:
			m.activeTab = TabDashboard
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab2) && !capturing:
			m.activeTab = TabEntries
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab3) && !capturing:
			m.activeTab = TabClients
			return m, m.initCurrentView()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // tabs and status bar
		m.dashboardView.SetSize(m.width, contentHeight)
		m.entriesView.SetSize(m.width, contentHeight)
		m.clientsView.SetSize(m.width, contentHeight)
		return m, nil
	}

	// Update the active view
	switch m.activeTab {
	case TabDashboard:
		m.dashboardView, cmd = m.dashboardView.Update(msg)
	case TabEntries:
		m.entriesView, cmd = m.entriesView.Update(msg)
	case TabClients:
		m.clientsView, cmd = m.clientsView.Update(msg)
	}

	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabDashboard:
		b.WriteString(m.dashboardView.View())
	case TabEntries:
		b.WriteString(m.entriesView.View())
	case TabClients:
		b.WriteString(m.clientsView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.isCapturingKeys() {
		parts = append(parts, m.renderKeyHelp("Tab", "switch field"))
		parts = append(parts, m.renderKeyHelp("Enter", "save"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	} else {
		switch m.activeTab {
		case TabDashboard:
			parts = append(parts, m.renderKeyHelp("h/l", "month"))
			parts = append(parts, m.renderKeyHelp("r", "refresh"))
		case TabEntries:
			parts = append(parts, m.renderKeyHelp("n", "new"))
			parts = append(parts, m.renderKeyHelp("d", "delete"))
			parts = append(parts, m.renderKeyHelp("h/l", "month"))
		case TabClients:
			parts = append(parts, m.renderKeyHelp("a", "toggle active"))
			parts = append(parts, m.renderKeyHelp("r", "refresh"))
		}

		parts = append(parts, m.renderKeyHelp("1-3", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	padding := m.width - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isCapturingKeys checks if the current view is capturing keyboard input
func (m Model) isCapturingKeys() bool {
	if m.activeTab == TabEntries {
		return m.entriesView.InInputMode()
	}
	return false
}

// initCurrentView refreshes the current view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabDashboard:
		return m.dashboardView.Init()
	case TabEntries:
		return m.entriesView.Init()
	case TabClients:
		return m.clientsView.Init()
	}
	return nil
}

// renderHelpOverlay renders the keyboard shortcut listing
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.StatLabel.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-3    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabDashboard:
		help.WriteString(m.styles.StatLabel.Render("Dashboard:"))
		help.WriteString("\n")
		help.WriteString("  h/l        Previous/Next month\n")
		help.WriteString("  r          Refresh\n")
	case TabEntries:
		help.WriteString(m.styles.StatLabel.Render("Entries:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  h/l        Previous/Next month\n")
		help.WriteString("  n          New entry\n")
		help.WriteString("  d          Delete entry\n")
		help.WriteString("  r          Refresh\n")
	case TabClients:
		help.WriteString(m.styles.StatLabel.Render("Clients:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  a          Activate/Deactivate client\n")
		help.WriteString("  r          Refresh\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.StatLabel.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Content.Render(help.String()))
}

// Run starts the TUI application
func Run(apiInstance api.API, svcs *services.ServiceContainer) error {
	model := New(apiInstance, svcs)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
