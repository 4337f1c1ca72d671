package today

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/utils"
)

// AddEventMsg asks for a new event today.
type AddEventMsg struct {
	Date time.Time
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true).
			Width(10)

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	date     time.Time
	events   []models.Event
	settings models.Settings
	add      key.Binding
	width    int
	height   int
}

func New(date time.Time, events []models.Event, s models.Settings, width, height int) Model {
	return Model{
		date:     utils.StartOfDay(date),
		events:   events,
		settings: s,
		add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add event"),
		),
		width:  width,
		height: height,
	}
}

// SetEvents replaces today's events. They are shown in the given order.
func (m *Model) SetEvents(date time.Time, events []models.Event) {
	m.date = utils.StartOfDay(date)
	m.events = events
}

func (m *Model) SetSettings(s models.Settings) {
	m.settings = s
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.add) {
		date := m.date
		return m, func() tea.Msg { return AddEventMsg{Date: date} }
	}
	return m, nil
}

func (m Model) View() string {
	title := titleStyle.Render("Today, " + utils.FormatDate(m.date, m.settings.DateFormat))

	if len(m.events) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, emptyStyle.Render("No events scheduled"))
	}

	lines := []string{title}
	for _, e := range m.events {
		line := timeStyle.Render(utils.FormatTime(e.Time, m.settings.TimeFormat)) + e.Title
		if e.Category != "" {
			line += " " + categoryStyle.Render(fmt.Sprintf("[%s]", e.Category.Label()))
		}
		lines = append(lines, line)
		if e.Description != "" {
			lines = append(lines, strings.Repeat(" ", 10)+categoryStyle.Render(e.Description))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
