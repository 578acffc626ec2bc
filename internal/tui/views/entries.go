package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"freelance-tracker/internal/api"
	"freelance-tracker/internal/domain"
	"freelance-tracker/internal/services"
	"freelance-tracker/internal/tui/ui"
)

// entryMode represents the current mode of the entries view
type entryMode int

const (
	entryModeNormal entryMode = iota
	entryModeAdd
	entryModeDelete
)

// EntriesModel is the model for the entries view
type EntriesModel struct {
	api    api.API
	svcs   *services.ServiceContainer
	styles ui.Styles
	keys   ui.KeyMap

	width   int
	height  int
	month   time.Time
	cursor  int
	entries []*domain.TimeEntry
	err     error
	status  string

	// Input mode state
	mode         entryMode
	clientInput  textinput.Model
	hoursInput   textinput.Model
	notesInput   textinput.Model
	focusedInput int // 0 = client, 1 = hours, 2 = notes
}

// NewEntriesModel creates a new entries view model
func NewEntriesModel(apiInstance api.API, svcs *services.ServiceContainer, styles ui.Styles, keys ui.KeyMap) EntriesModel {
	clientInput := textinput.New()
	clientInput.Placeholder = "Client name..."
	clientInput.CharLimit = 100
	clientInput.Width = 30

	hoursInput := textinput.New()
	hoursInput.Placeholder = "Hours (e.g. 3.5)..."
	hoursInput.CharLimit = 6
	hoursInput.Width = 12

	notesInput := textinput.New()
	notesInput.Placeholder = "Notes..."
	notesInput.CharLimit = 200
	notesInput.Width = 40

	now := time.Now()
	return EntriesModel{
		api:         apiInstance,
		svcs:        svcs,
		styles:      styles,
		keys:        keys,
		month:       time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local),
		clientInput: clientInput,
		hoursInput:  hoursInput,
		notesInput:  notesInput,
	}
}

// entriesLoadedMsg is sent when entries are loaded
type entriesLoadedMsg struct {
	entries []*domain.TimeEntry
	err     error
}

// entryMutatedMsg is sent after an add or delete
type entryMutatedMsg struct {
	status string
	err    error
}

// InInputMode reports whether the view is capturing text input
func (m EntriesModel) InInputMode() bool {
	return m.mode == entryModeAdd
}

// Init implements tea.Model
func (m EntriesModel) Init() tea.Cmd {
	return m.load()
}

// SetSize updates the view dimensions
func (m *EntriesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update implements tea.Model
func (m EntriesModel) Update(msg tea.Msg) (EntriesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case entryModeAdd:
			return m.handleAddMode(msg)
		case entryModeDelete:
			return m.handleDeleteMode(msg)
		}
		return m.handleNormalMode(msg)

	case entriesLoadedMsg:
		m.err = msg.err
		m.entries = msg.entries
		if m.cursor >= len(m.entries) {
			m.cursor = len(m.entries) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}

	case entryMutatedMsg:
		m.err = msg.err
		m.status = msg.status
		if msg.err == nil {
			return m, m.load()
		}
	}
	return m, nil
}

func (m EntriesModel) handleNormalMode(msg tea.KeyMsg) (EntriesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.PrevMonth):
		m.month = m.month.AddDate(0, -1, 0)
		return m, m.load()
	case key.Matches(msg, m.keys.NextMonth):
		m.month = m.month.AddDate(0, 1, 0)
		return m, m.load()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.load()
	case key.Matches(msg, m.keys.New):
		m.mode = entryModeAdd
		m.status = ""
		m.focusedInput = 0
		m.clientInput.Focus()
		m.hoursInput.Blur()
		m.notesInput.Blur()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Delete):
		if len(m.entries) > 0 {
			m.mode = entryModeDelete
			m.status = ""
		}
	}
	return m, nil
}

func (m EntriesModel) handleAddMode(msg tea.KeyMsg) (EntriesModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = entryModeNormal
		m.resetInputs()
		return m, nil
	case "tab":
		m.focusedInput = (m.focusedInput + 1) % 3
		m.focusInput()
		return m, textinput.Blink
	case "enter":
		return m.submitEntry()
	}

	var cmd tea.Cmd
	switch m.focusedInput {
	case 0:
		m.clientInput, cmd = m.clientInput.Update(msg)
	case 1:
		m.hoursInput, cmd = m.hoursInput.Update(msg)
	case 2:
		m.notesInput, cmd = m.notesInput.Update(msg)
	}
	return m, cmd
}

func (m EntriesModel) handleDeleteMode(msg tea.KeyMsg) (EntriesModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = entryModeNormal
		if m.cursor < len(m.entries) {
			return m, m.deleteEntry(m.entries[m.cursor].ID)
		}
	case "n", "N", "esc":
		m.mode = entryModeNormal
	}
	return m, nil
}

func (m *EntriesModel) focusInput() {
	m.clientInput.Blur()
	m.hoursInput.Blur()
	m.notesInput.Blur()
	switch m.focusedInput {
	case 0:
		m.clientInput.Focus()
	case 1:
		m.hoursInput.Focus()
	case 2:
		m.notesInput.Focus()
	}
}

func (m *EntriesModel) resetInputs() {
	m.clientInput.SetValue("")
	m.hoursInput.SetValue("")
	m.notesInput.SetValue("")
	m.focusedInput = 0
}

func (m EntriesModel) submitEntry() (EntriesModel, tea.Cmd) {
	clientName := strings.TrimSpace(m.clientInput.Value())
	hours, err := strconv.ParseFloat(strings.TrimSpace(m.hoursInput.Value()), 64)
	if err != nil || clientName == "" {
		m.status = "client and a numeric hours value are required"
		return m, nil
	}
	notes := strings.TrimSpace(m.notesInput.Value())

	m.mode = entryModeNormal
	m.resetInputs()

	apiInstance := m.api
	return m, func() tea.Msg {
		_, err := apiInstance.CreateTimeEntry(context.Background(), domain.DateOnly(time.Now()), clientName, hours, notes)
		if err != nil {
			return entryMutatedMsg{err: err}
		}
		return entryMutatedMsg{status: fmt.Sprintf("logged %.2fh for %s", hours, clientName)}
	}
}

func (m EntriesModel) deleteEntry(id int64) tea.Cmd {
	apiInstance := m.api
	return func() tea.Msg {
		if err := apiInstance.DeleteTimeEntry(context.Background(), id); err != nil {
			return entryMutatedMsg{err: err}
		}
		return entryMutatedMsg{status: "entry deleted"}
	}
}

// load fetches the month's entries
func (m EntriesModel) load() tea.Cmd {
	from := m.month
	to := m.month.AddDate(0, 1, -1)
	apiInstance := m.api
	return func() tea.Msg {
		entries, err := apiInstance.SearchTimeEntries(context.Background(), domain.SearchOptions{From: &from, To: &to})
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

// View implements tea.Model
func (m EntriesModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Entries " + m.month.Format("January 2006")))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	switch m.mode {
	case entryModeAdd:
		b.WriteString(m.renderAddForm())
	case entryModeDelete:
		if m.cursor < len(m.entries) {
			e := m.entries[m.cursor]
			b.WriteString(m.styles.Warning.Render(fmt.Sprintf("delete %.2fh for %s on %s? (y/n)",
				e.Hours, e.ClientName, e.Date.Format("2006-01-02"))))
			b.WriteString("\n")
		}
	}

	if len(m.entries) == 0 {
		b.WriteString(m.styles.RowMuted.Render("no entries this month"))
		b.WriteString("\n")
	}

	total := 0.0
	for i, e := range m.entries {
		style := m.styles.RowNormal
		if i == m.cursor && m.mode == entryModeNormal {
			style = m.styles.RowSelected
		}
		line := fmt.Sprintf("%-10s %-24s %6.2fh  %s", e.Date.Format("2006-01-02"), e.ClientName, e.Hours, e.Notes)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
		total += e.Hours
	}
	if len(m.entries) > 0 {
		b.WriteString(m.styles.RowMuted.Render(fmt.Sprintf("total %.2fh", total)))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(m.styles.Success.Render(m.status))
		b.WriteString("\n")
	}

	return m.styles.Content.Render(b.String())
}

func (m EntriesModel) renderAddForm() string {
	inputStyle := func(i int) func(...string) string {
		if i == m.focusedInput {
			return m.styles.InputFocused.Render
		}
		return m.styles.Input.Render
	}
	return inputStyle(0)(m.clientInput.View()) + "\n" +
		inputStyle(1)(m.hoursInput.View()) + "\n" +
		inputStyle(2)(m.notesInput.View()) + "\n"
}
