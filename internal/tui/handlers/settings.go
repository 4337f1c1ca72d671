package handlers

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daypilot/internal/constants"
	appsettings "github.com/julianstephens/daypilot/internal/settings"
	"github.com/julianstephens/daypilot/internal/tui/components/settings"
	"github.com/julianstephens/daypilot/internal/tui/state"
)

// HandleEditSettingsState handles the edit settings state
func HandleEditSettingsState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.FormError = ""
		m.State = constants.StateSettings
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		if err := saveSettingsForm(m.Settings, m.SettingsForm); err != nil {
			m.FormError = "Failed to update settings: " + err.Error()
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		m.FormError = ""
		m.RefreshSettings()
		m.StatusMessage = "Settings saved"
		m.State = constants.StateSettings
	case huh.StateAborted:
		m.FormError = ""
		m.State = constants.StateSettings
	}
	return tea.Batch(cmds...)
}

// saveSettingsForm writes only the fields that changed, so each change
// notifies listeners once.
func saveSettingsForm(prefs appsettings.Preferences, fm *state.SettingsFormModel) error {
	current := prefs.Get()

	changes := []struct {
		key     string
		value   any
		changed bool
	}{
		{constants.SettingTimeFormat, fm.TimeFormat, fm.TimeFormat != current.TimeFormat},
		{constants.SettingWeekStartDay, fm.WeekStartDay, fm.WeekStartDay != current.WeekStartDay},
		{constants.SettingDefaultEventCategory, fm.DefaultEventCategory, fm.DefaultEventCategory != current.DefaultEventCategory},
		{constants.SettingNotifications, fm.Notifications, fm.Notifications != current.Notifications},
		{constants.SettingDateFormat, fm.DateFormat, fm.DateFormat != current.DateFormat},
	}
	for _, c := range changes {
		if !c.changed {
			continue
		}
		if err := prefs.SetField(c.key, c.value); err != nil {
			return err
		}
	}
	return nil
}

// HandleSettingsMessages handles messages from the settings component
func HandleSettingsMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg.(type) {
	case settings.EditSettingsMsg:
		current := m.Settings.Get()
		m.FormError = ""
		m.SettingsForm = &state.SettingsFormModel{
			TimeFormat:           current.TimeFormat,
			WeekStartDay:         current.WeekStartDay,
			DefaultEventCategory: current.DefaultEventCategory,
			Notifications:        current.Notifications,
			DateFormat:           current.DateFormat,
		}
		m.Form = NewSettingsForm(m.SettingsForm)
		m.State = constants.StateEditSettings
		return true, m.Form.Init()

	case settings.ResetSettingsMsg:
		m.PreviousState = m.State
		m.State = constants.StateConfirmReset
		return true, nil
	}
	return false, nil
}
