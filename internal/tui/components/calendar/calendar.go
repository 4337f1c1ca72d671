package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/utils"
)

// AddEventMsg asks for a new event on Date.
type AddEventMsg struct {
	Date time.Time
}

// MonthChangedMsg is sent when the selection moves into another month, so
// the parent can load that month's events.
type MonthChangedMsg struct {
	Year  int
	Month time.Month
}

type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	NextMonth key.Binding
	PrevMonth key.Binding
	Today     key.Binding
	Add       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev week"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next week"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next month"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prev month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add event"),
		),
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Bold(true)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236"))

	moreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

const (
	minCellWidth = 10
	// day number, the visible events and the overflow line
	cellHeight = constants.MaxEventsPerCell + 2
)

type Model struct {
	year     int
	month    time.Month
	selected time.Time
	today    time.Time
	byDay    map[int][]models.Event
	settings models.Settings
	keys     KeyMap
	width    int
	height   int
}

func New(today time.Time, s models.Settings, width, height int) Model {
	today = utils.StartOfDay(today)
	return Model{
		year:     today.Year(),
		month:    today.Month(),
		selected: today,
		today:    today,
		byDay:    map[int][]models.Event{},
		settings: s,
		keys:     DefaultKeyMap(),
		width:    width,
		height:   height,
	}
}

// SetEvents replaces the events shown for the displayed month, keyed by day.
func (m *Model) SetEvents(byDay map[int][]models.Event) {
	if byDay == nil {
		byDay = map[int][]models.Event{}
	}
	m.byDay = byDay
}

func (m *Model) SetSettings(s models.Settings) {
	m.settings = s
}

func (m *Model) SetToday(today time.Time) {
	m.today = utils.StartOfDay(today)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Month() (int, time.Month) {
	return m.year, m.month
}

func (m Model) Selected() time.Time {
	return m.selected
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		return m.selectDate(m.selected.AddDate(0, 0, -1))
	case key.Matches(keyMsg, m.keys.Right):
		return m.selectDate(m.selected.AddDate(0, 0, 1))
	case key.Matches(keyMsg, m.keys.Up):
		return m.selectDate(m.selected.AddDate(0, 0, -7))
	case key.Matches(keyMsg, m.keys.Down):
		return m.selectDate(m.selected.AddDate(0, 0, 7))
	case key.Matches(keyMsg, m.keys.NextMonth):
		return m.shiftMonth(1)
	case key.Matches(keyMsg, m.keys.PrevMonth):
		return m.shiftMonth(-1)
	case key.Matches(keyMsg, m.keys.Today):
		return m.selectDate(m.today)
	case key.Matches(keyMsg, m.keys.Add):
		date := m.selected
		return m, func() tea.Msg { return AddEventMsg{Date: date} }
	}
	return m, nil
}

// shiftMonth keeps the selected day of month, clamped to the new month's length.
func (m Model) shiftMonth(n int) (Model, tea.Cmd) {
	year, month := utils.AddMonths(m.year, m.month, n)
	day := m.selected.Day()
	if last := utils.DaysInMonth(year, month); day > last {
		day = last
	}
	return m.selectDate(time.Date(year, month, day, 0, 0, 0, 0, m.selected.Location()))
}

func (m Model) selectDate(date time.Time) (Model, tea.Cmd) {
	m.selected = utils.StartOfDay(date)
	if m.selected.Year() == m.year && m.selected.Month() == m.month {
		return m, nil
	}
	m.year, m.month = m.selected.Year(), m.selected.Month()
	m.byDay = map[int][]models.Event{}
	year, month := m.year, m.month
	return m, func() tea.Msg { return MonthChangedMsg{Year: year, Month: month} }
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	cellWidth := m.width/7 - 1
	if cellWidth < minCellWidth {
		cellWidth = minCellWidth
	}

	title := titleStyle.Render(time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006"))

	var header []string
	for _, label := range utils.WeekdayLabels(m.settings.WeekStartDay) {
		header = append(header, cellStyle.Width(cellWidth).Render(weekdayStyle.Render(label)))
	}

	rows := []string{title, "", lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for _, week := range utils.MonthGrid(m.year, m.month, m.settings.WeekStartDay) {
		var cells []string
		for _, day := range week {
			cells = append(cells, m.renderCell(day, cellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	rows = append(rows, "", m.viewSelectedDay())
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(day, width int) string {
	style := cellStyle.Width(width).Height(cellHeight)
	if day == 0 {
		return style.Render("")
	}

	date := time.Date(m.year, m.month, day, 0, 0, 0, 0, m.selected.Location())
	number := fmt.Sprintf("%2d", day)
	if utils.SameDay(date, m.today) {
		number = todayStyle.Render(number)
	}

	lines := []string{number}
	events := m.byDay[day]
	for i, e := range events {
		if i == constants.MaxEventsPerCell {
			lines = append(lines, moreStyle.Render(fmt.Sprintf("+%d more", len(events)-i)))
			break
		}
		lines = append(lines, truncate(e.Time+" "+e.Title, width-2))
	}

	if utils.SameDay(date, m.selected) {
		style = style.Inherit(selectedStyle)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) viewSelectedDay() string {
	heading := titleStyle.Render(utils.FormatDate(m.selected, m.settings.DateFormat))

	var events []models.Event
	if m.selected.Year() == m.year && m.selected.Month() == m.month {
		events = m.byDay[m.selected.Day()]
	}
	if len(events) == 0 {
		return heading + "\n" + dimStyle.Render("No events scheduled. Press 'a' to add one.")
	}

	lines := []string{heading}
	for _, e := range events {
		line := fmt.Sprintf("%8s  %s", utils.FormatTime(e.Time, m.settings.TimeFormat), e.Title)
		if e.Category != "" {
			line += dimStyle.Render(" (" + e.Category.Label() + ")")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
