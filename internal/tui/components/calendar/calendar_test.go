package calendar

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daypilot/internal/models"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestNavigationWithinMonth(t *testing.T) {
	m := New(date(2024, time.March, 15), models.DefaultSettings(), 140, 40)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, cmd)
	assert.Equal(t, date(2024, time.March, 16), m.Selected())

	m, _ = m.Update(runes("k"))
	assert.Equal(t, date(2024, time.March, 9), m.Selected())
}

func TestNavigationAcrossMonthAsksForEvents(t *testing.T) {
	m := New(date(2024, time.March, 1), models.DefaultSettings(), 140, 40)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	require.NotNil(t, cmd)
	assert.Equal(t, MonthChangedMsg{Year: 2024, Month: time.February}, cmd())
	assert.Equal(t, date(2024, time.February, 29), m.Selected())

	year, month := m.Month()
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.February, month)
}

func TestShiftMonthClampsDay(t *testing.T) {
	m := New(date(2024, time.January, 31), models.DefaultSettings(), 140, 40)

	m, cmd := m.Update(runes("n"))
	require.NotNil(t, cmd)
	assert.Equal(t, date(2024, time.February, 29), m.Selected())

	m, _ = m.Update(runes("p"))
	assert.Equal(t, date(2024, time.January, 29), m.Selected())
}

func TestTodayKeyReturnsToToday(t *testing.T) {
	m := New(date(2024, time.March, 15), models.DefaultSettings(), 140, 40)
	m, _ = m.Update(runes("n"))
	m, cmd := m.Update(runes("t"))

	require.NotNil(t, cmd)
	assert.Equal(t, date(2024, time.March, 15), m.Selected())
}

func TestAddUsesSelectedDay(t *testing.T) {
	m := New(date(2024, time.March, 15), models.DefaultSettings(), 140, 40)
	m, _ = m.Update(runes("j"))

	_, cmd := m.Update(runes("a"))
	require.NotNil(t, cmd)
	assert.Equal(t, AddEventMsg{Date: date(2024, time.March, 22)}, cmd())
}

func TestViewCollapsesBusyDays(t *testing.T) {
	m := New(date(2024, time.March, 5), models.DefaultSettings(), 140, 40)
	m.SetEvents(map[int][]models.Event{
		5: {
			{Title: "Standup", Time: "09:00", Category: models.CategoryWork},
			{Title: "Lunch", Time: "12:00", Category: models.CategoryPersonal},
			{Title: "Gym", Time: "18:00", Category: models.CategoryHealth},
		},
	})

	view := m.View()
	assert.Contains(t, view, "March 2024")
	assert.Contains(t, view, "09:00 Standup")
	assert.Contains(t, view, "12:00 Lunch")
	assert.NotContains(t, view, "18:00 Gym")
	assert.Contains(t, view, "+1 more")

	// the selected day lists everything with formatted times
	assert.Contains(t, view, "6:00 PM")
	assert.Contains(t, view, "Gym")
}

func TestViewEmptyDay(t *testing.T) {
	m := New(date(2024, time.March, 5), models.DefaultSettings(), 140, 40)
	assert.Contains(t, m.View(), "No events scheduled")
}

func TestViewHonorsWeekStart(t *testing.T) {
	s := models.DefaultSettings()
	s.WeekStartDay = models.WeekStartMonday
	m := New(date(2024, time.March, 5), s, 140, 40)

	view := m.View()
	assert.Less(t, strings.Index(view, "Mon"), strings.Index(view, "Sun"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "…", truncate("abcdefgh", 1))
}
