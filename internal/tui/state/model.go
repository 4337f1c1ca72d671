package state

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/events"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/settings"
	"github.com/julianstephens/daypilot/internal/storage"
	"github.com/julianstephens/daypilot/internal/tui/components/calendar"
	"github.com/julianstephens/daypilot/internal/tui/components/eventlist"
	settingsview "github.com/julianstephens/daypilot/internal/tui/components/settings"
	"github.com/julianstephens/daypilot/internal/tui/components/today"
	"github.com/julianstephens/daypilot/internal/validation"
)

// Tabs in display order. The index matches the tab's SessionState.
var Tabs = []string{"Calendar", "List", "Today", "Settings"}

// EventFormModel represents the form model for event editing
type EventFormModel struct {
	Title       string
	Date        string
	Time        string
	Category    models.Category
	Description string
}

// SettingsFormModel represents the form model for settings
type SettingsFormModel struct {
	TimeFormat           models.TimeFormat
	WeekStartDay         models.WeekStartDay
	DefaultEventCategory models.Category
	Notifications        bool
	DateFormat           models.DateFormat
}

// Model represents the shared state for the TUI
type Model struct {
	Events        *events.Manager
	Settings      *settings.Store
	LastTab       *storage.Value[string]
	State         constants.SessionState
	PreviousState constants.SessionState
	Help          help.Model
	Calendar      calendar.Model
	EventList     eventlist.Model
	Today         today.Model
	SettingsView  settingsview.Model
	Form          *huh.Form
	EventForm     *EventFormModel
	SettingsForm  *SettingsFormModel
	EditingID     string // empty while adding
	DeleteID      string
	Quitting      bool
	Width         int
	Height        int
	FormError     string // Error message to display for form operations
	StatusMessage string

	ValidationConflicts []validation.Conflict // today's conflicts
}

// New creates a new state Model. kv may be nil, in which case the last tab
// is not remembered.
func New(mgr *events.Manager, st *settings.Store, kv storage.KV) *Model {
	s := st.Get()
	now := mgr.Now()

	m := &Model{
		Events:       mgr,
		Settings:     st,
		State:        constants.StateCalendar,
		Help:         help.New(),
		Calendar:     calendar.New(now, s, 0, 0),
		EventList:    eventlist.New(mgr.Sorted(), s, 0, 0),
		Today:        today.New(now, mgr.EventsToday(), s, 0, 0),
		SettingsView: settingsview.New(s, 0, 0),
	}

	if kv != nil {
		m.LastTab = storage.NewValue(kv, constants.LastTabStorageKey, Tabs[0])
		m.State = TabState(m.LastTab.Get())
	}
	m.RefreshEvents()
	return m
}

// TabState maps a stored tab name back to its state; unknown names select
// the calendar.
func TabState(name string) constants.SessionState {
	for i, t := range Tabs {
		if t == name {
			return constants.SessionState(i)
		}
	}
	return constants.StateCalendar
}

// IsTab reports whether s is one of the top-level tabs rather than a form or
// confirmation.
func IsTab(s constants.SessionState) bool {
	return int(s) >= 0 && int(s) < len(Tabs)
}

// SwitchTab moves to the tab delta places away, wrapping around, and
// remembers it.
func (m *Model) SwitchTab(delta int) {
	if !IsTab(m.State) {
		return
	}
	n := len(Tabs)
	next := ((int(m.State)+delta)%n + n) % n
	m.State = constants.SessionState(next)
	m.StatusMessage = ""
	if m.LastTab != nil {
		_ = m.LastTab.Set(Tabs[next])
	}
}
