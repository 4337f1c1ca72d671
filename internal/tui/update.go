package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/tui/handlers"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
		return m, nil
	case eventsChangedMsg:
		m.RefreshEvents()
		return m, waitFor(m.eventsCh, eventsChangedMsg{})
	case settingsChangedMsg:
		m.RefreshSettings()
		return m, waitFor(m.settingsCh, settingsChangedMsg{})
	}

	// Forms and confirmations own the keyboard
	switch m.State {
	case constants.StateAddEvent, constants.StateEditEvent:
		return m, handlers.HandleEventFormState(m.Model, msg)
	case constants.StateEditSettings:
		return m, handlers.HandleEditSettingsState(m.Model, msg)
	case constants.StateConfirmDelete:
		return m, handlers.HandleConfirmDeleteState(m.Model, msg)
	case constants.StateConfirmReset:
		return m, handlers.HandleConfirmResetState(m.Model, msg)
	}

	if handled, cmd := handlers.HandleEventMessages(m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleSettingsMessages(m.Model, msg); handled {
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		filtering := m.State == constants.StateList && m.EventList.Filtering()
		if !filtering || keyMsg.String() == "ctrl+c" {
			if handled, cmd := handlers.HandleGlobalKeys(m.Model, keyMsg); handled {
				return m, cmd
			}
		}
	}

	var cmd tea.Cmd
	switch m.State {
	case constants.StateCalendar:
		m.Calendar, cmd = m.Calendar.Update(msg)
	case constants.StateList:
		m.EventList, cmd = m.EventList.Update(msg)
	case constants.StateToday:
		m.Today, cmd = m.Today.Update(msg)
	case constants.StateSettings:
		m.SettingsView, cmd = m.SettingsView.Update(msg)
	}
	return m, cmd
}
