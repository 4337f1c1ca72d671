package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daypilot/internal/tui/state"
)

// HandleGlobalKeys handles keys that work on every tab: quitting and
// cycling tabs. Forms and confirmations never reach here.
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if !state.IsTab(m.State) {
		return false, nil
	}
	switch msg.String() {
	case "ctrl+c", "q":
		m.Quitting = true
		return true, tea.Quit
	case "tab":
		m.SwitchTab(1)
		return true, nil
	case "shift+tab":
		m.SwitchTab(-1)
		return true, nil
	case "?":
		m.Help.ShowAll = !m.Help.ShowAll
		return true, nil
	}
	return false, nil
}
