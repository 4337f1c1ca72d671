package state

// RefreshEvents reloads every view from the event manager.
func (m *Model) RefreshEvents() {
	now := m.Events.Now()
	year, month := m.Calendar.Month()
	m.Calendar.SetToday(now)
	m.Calendar.SetEvents(m.Events.EventsInMonth(year, month))
	m.EventList.SetEvents(m.Events.Sorted())
	m.Today.SetEvents(now, m.Events.EventsToday())
	m.UpdateValidationStatus()
}

// RefreshSettings pushes the current settings into every view.
func (m *Model) RefreshSettings() {
	s := m.Settings.Get()
	m.Calendar.SetSettings(s)
	m.EventList.SetSettings(s)
	m.Today.SetSettings(s)
	m.SettingsView.SetSettings(s)
}

// Resize gives the views the space left under the tab bar and help line.
func (m *Model) Resize(width, height int) {
	m.Width = width
	m.Height = height
	m.Help.Width = width

	// tab bar, padding and help
	body := height - 6
	if body < 0 {
		body = 0
	}
	m.Calendar.SetSize(width-4, body)
	m.EventList.SetSize(width-4, body)
	m.Today.SetSize(width-4, body)
	m.SettingsView.SetSize(width, body)
}
