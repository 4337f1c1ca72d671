package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/logger"
	"github.com/julianstephens/daypilot/internal/tui/state"
)

// HandleConfirmDeleteState handles the delete confirmation state
func HandleConfirmDeleteState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if m.DeleteID != "" {
				if m.Events.Delete(m.DeleteID) {
					m.StatusMessage = "Event deleted"
				} else {
					logger.Debug("Event vanished before delete", "id", m.DeleteID)
					m.StatusMessage = "Event no longer exists"
				}
				m.DeleteID = ""
				m.RefreshEvents()
			}
			m.State = m.PreviousState
		case "n", "N", "esc", "q":
			m.DeleteID = ""
			m.State = m.PreviousState
		}
	}
	return nil
}

// HandleConfirmResetState handles the reset settings confirmation state
func HandleConfirmResetState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			m.Settings.Reset()
			m.RefreshSettings()
			m.StatusMessage = "Settings restored to defaults"
			m.State = constants.StateSettings
		case "n", "N", "esc", "q":
			m.State = constants.StateSettings
		}
	}
	return nil
}
