package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"freelance-tracker/internal/api"
	"freelance-tracker/internal/domain"
	"freelance-tracker/internal/services"
	"freelance-tracker/internal/tui/ui"
)

// ClientsModel is the model for the clients view
type ClientsModel struct {
	api    api.API
	svcs   *services.ServiceContainer
	styles ui.Styles
	keys   ui.KeyMap

	width   int
	height  int
	cursor  int
	clients []*domain.Client
	err     error
	status  string
}

// NewClientsModel creates a new clients view model
func NewClientsModel(apiInstance api.API, svcs *services.ServiceContainer, styles ui.Styles, keys ui.KeyMap) ClientsModel {
	return ClientsModel{
		api:    apiInstance,
		svcs:   svcs,
		styles: styles,
		keys:   keys,
	}
}

// clientsLoadedMsg is sent when clients are loaded
type clientsLoadedMsg struct {
	clients []*domain.Client
	err     error
}

// clientToggledMsg is sent after an activate/deactivate
type clientToggledMsg struct {
	status string
	err    error
}

// Init implements tea.Model
func (m ClientsModel) Init() tea.Cmd {
	return m.load()
}

// SetSize updates the view dimensions
func (m *ClientsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update implements tea.Model
func (m ClientsModel) Update(msg tea.Msg) (ClientsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.clients)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Refresh):
			return m, m.load()
		case key.Matches(msg, m.keys.ToggleActive):
			if m.cursor < len(m.clients) {
				c := m.clients[m.cursor]
				return m, m.toggleActive(c.Name, !c.Active)
			}
		}

	case clientsLoadedMsg:
		m.err = msg.err
		m.clients = msg.clients
		if m.cursor >= len(m.clients) {
			m.cursor = len(m.clients) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}

	case clientToggledMsg:
		m.err = msg.err
		m.status = msg.status
		if msg.err == nil {
			return m, m.load()
		}
	}
	return m, nil
}

// load fetches all clients, inactive ones included
func (m ClientsModel) load() tea.Cmd {
	apiInstance := m.api
	return func() tea.Msg {
		clients, err := apiInstance.ListClients(context.Background(), false)
		return clientsLoadedMsg{clients: clients, err: err}
	}
}

func (m ClientsModel) toggleActive(name string, active bool) tea.Cmd {
	apiInstance := m.api
	return func() tea.Msg {
		if err := apiInstance.SetClientActive(context.Background(), name, active); err != nil {
			return clientToggledMsg{err: err}
		}
		if active {
			return clientToggledMsg{status: name + " activated"}
		}
		return clientToggledMsg{status: name + " deactivated"}
	}
}

// View implements tea.Model
func (m ClientsModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Clients"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}
	if len(m.clients) == 0 {
		b.WriteString(m.styles.RowMuted.Render("no clients yet"))
		b.WriteString("\n")
		return m.styles.Content.Render(b.String())
	}

	for i, c := range m.clients {
		limit := ""
		if c.HasHourLimit {
			limit = fmt.Sprintf("limit %.1fh (%s)", c.HourLimit, c.EffectiveLimitType())
		}
		line := fmt.Sprintf("%-24s %8.2f  %-18s %s", c.Name, c.HourlyRate, c.BillingType, limit)

		style := m.styles.RowNormal
		if !c.Active {
			style = m.styles.RowMuted
			line += "  (inactive)"
		}
		if i == m.cursor {
			style = m.styles.RowSelected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(m.styles.Success.Render(m.status))
		b.WriteString("\n")
	}

	return m.styles.Content.Render(b.String())
}
