package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/events"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/settings"
	"github.com/julianstephens/daypilot/internal/storage"
	"github.com/julianstephens/daypilot/internal/tui/state"
)

// eventsChangedMsg and settingsChangedMsg carry change notifications from
// the event manager and settings store into the update loop.
type eventsChangedMsg struct{}

type settingsChangedMsg struct{}

type Model struct {
	*state.Model
	keys KeyMap

	eventsCh    chan struct{}
	settingsCh  chan struct{}
	unsubscribe []func()
}

// NewModel builds the TUI over an event manager and settings store. kv
// remembers the last tab and may be nil.
func NewModel(mgr *events.Manager, st *settings.Store, kv storage.KV) Model {
	m := Model{
		Model:      state.New(mgr, st, kv),
		keys:       DefaultKeyMap(),
		eventsCh:   make(chan struct{}, 1),
		settingsCh: make(chan struct{}, 1),
	}

	m.unsubscribe = append(m.unsubscribe,
		mgr.Subscribe(func([]models.Event) { signal(m.eventsCh) }),
		st.Subscribe(func(models.Settings) { signal(m.settingsCh) }),
	)
	return m
}

// signal never blocks; one pending notification is enough to trigger a
// refresh.
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func waitFor(ch <-chan struct{}, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return msg
	}
}

// Close stops listening for changes.
func (m Model) Close() {
	for _, cancel := range m.unsubscribe {
		cancel()
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.State {
	case constants.StateCalendar, constants.StateToday:
		keys = append(keys, m.keys.Add)
	case constants.StateList:
		keys = append(keys, m.keys.Add, m.keys.Edit, m.keys.Delete)
	case constants.StateSettings:
		keys = append(keys, m.keys.Edit, m.keys.Reset)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	var navigation, actions []key.Binding
	switch m.State {
	case constants.StateCalendar:
		navigation = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.NextMon, m.keys.PrevMon, m.keys.Today}
		actions = []key.Binding{m.keys.Add}
	case constants.StateList:
		navigation = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Filter}
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete}
	case constants.StateToday:
		actions = []key.Binding{m.keys.Add}
	case constants.StateSettings:
		actions = []key.Binding{m.keys.Edit, m.keys.Reset}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitFor(m.eventsCh, eventsChangedMsg{}),
		waitFor(m.settingsCh, settingsChangedMsg{}),
	)
}
