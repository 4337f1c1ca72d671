package settings

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/utils"
)

type EditSettingsMsg struct{}

type ResetSettingsMsg struct{}

type Model struct {
	settings models.Settings
	width    int
	height   int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(25)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginBottom(1)
)

// sampleDate is rendered to show what the date format looks like.
var sampleDate = time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local)

func New(s models.Settings, width, height int) Model {
	return Model{
		settings: s,
		width:    width,
		height:   height,
	}
}

func (m *Model) SetSettings(s models.Settings) {
	m.settings = s
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			return m, func() tea.Msg { return EditSettingsMsg{} }
		case "r":
			return m, func() tea.Msg { return ResetSettingsMsg{} }
		}
	}
	return m, nil
}

func row(label, value string) string {
	return labelStyle.Render(label) + " " + valueStyle.Render(value)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	s := m.settings
	var sections []string

	displayTitle := titleStyle.Render("Display")
	displayContent := lipgloss.JoinVertical(
		lipgloss.Left,
		row("Time Format:", string(s.TimeFormat)+"  ("+utils.FormatTime("14:30", s.TimeFormat)+")"),
		row("Date Format:", string(s.DateFormat)+"  ("+utils.FormatDate(sampleDate, s.DateFormat)+")"),
		row("Week Starts On:", s.WeekStartDay.String()),
	)
	sections = append(sections, sectionStyle.Render(displayTitle+"\n"+displayContent))

	eventsTitle := titleStyle.Render("Events")
	eventsContent := lipgloss.JoinVertical(
		lipgloss.Left,
		row("Default Category:", s.DefaultEventCategory.Label()),
		row("Notifications:", onOff(s.Notifications)),
	)
	sections = append(sections, sectionStyle.Render(eventsTitle+"\n"+eventsContent))

	helpText := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		MarginTop(2).
		Render("Press 'e' to edit settings, 'r' to restore defaults")

	sections = append(sections, helpText)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Left,
		lipgloss.Top,
		lipgloss.NewStyle().Padding(2, 4).Render(content),
	)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
