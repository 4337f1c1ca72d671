package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/tui/state"
)

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string

	switch m.State {
	case constants.StateCalendar:
		content = docStyle.Render(m.Calendar.View())
	case constants.StateList:
		content = docStyle.Render(m.EventList.View())
	case constants.StateToday:
		content = docStyle.Render(m.Today.View())
	case constants.StateSettings:
		content = m.SettingsView.View()
	case constants.StateAddEvent, constants.StateEditEvent, constants.StateEditSettings:
		content = m.viewForm()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	case constants.StateConfirmReset:
		content = m.viewConfirmReset()
	}

	var banner string
	if len(m.ValidationConflicts) > 0 && (m.State == constants.StateCalendar || m.State == constants.StateToday) {
		banner = m.viewConflictBanner()
	}

	var status string
	if m.StatusMessage != "" && state.IsTab(m.State) {
		status = statusStyle.Render(m.StatusMessage)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		status,
		m.Help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range state.Tabs {
		if m.State == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewForm() string {
	var title string
	switch m.State {
	case constants.StateAddEvent:
		title = "New Event"
	case constants.StateEditEvent:
		title = "Edit Event"
	case constants.StateEditSettings:
		title = "Settings"
	}

	parts := []string{formTitleStyle.Render(title), m.Form.View()}
	if m.FormError != "" {
		parts = append(parts, dangerStyle.Render(m.FormError))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewConfirmDelete() string {
	title := "this event"
	if e, ok := m.Events.Get(m.DeleteID); ok {
		title = "\"" + e.Title + "\""
	}
	return lipgloss.Place(m.Width, m.Height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Are you sure you want to delete "+title+"?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewConfirmReset() string {
	return lipgloss.Place(m.Width, m.Height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			warningStyle.Render("Restore all settings to their defaults?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewConflictBanner() string {
	if len(m.ValidationConflicts) == 0 {
		return ""
	}
	return bannerStyle.Render(fmt.Sprintf("⚠ %d CONFLICT(S) TODAY", len(m.ValidationConflicts)))
}
