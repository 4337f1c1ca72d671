package eventlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/utils"
)

type AddEventMsg struct{}

type DeleteEventMsg struct {
	ID string
}

type EditEventMsg struct {
	Event models.Event
}

type Item struct {
	Event    models.Event
	Settings models.Settings
}

func (i Item) Title() string { return i.Event.Title }
func (i Item) Description() string {
	desc := utils.FormatEventWhen(i.Event, i.Settings)
	if i.Event.Category != "" {
		desc += " | " + i.Event.Category.Label()
	}
	return desc
}
func (i Item) FilterValue() string { return i.Event.Title + " " + i.Event.Description }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list     list.Model
	keys     KeyMap
	settings models.Settings
}

func New(events []models.Event, s models.Settings, width, height int) Model {
	l := list.New(items(events, s), list.NewDefaultDelegate(), width, height)
	l.Title = "Events"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}

	return Model{list: l, keys: keys, settings: s}
}

func items(events []models.Event, s models.Settings) []list.Item {
	out := make([]list.Item, len(events))
	for i, e := range events {
		out[i] = Item{Event: e, Settings: s}
	}
	return out
}

// SetEvents replaces the listed events, keeping their order.
func (m *Model) SetEvents(events []models.Event) {
	m.list.SetItems(items(events, m.settings))
}

// SetSettings re-renders the current items with new display preferences.
func (m *Model) SetSettings(s models.Settings) {
	m.settings = s
	var events []models.Event
	for _, it := range m.list.Items() {
		if i, ok := it.(Item); ok {
			events = append(events, i.Event)
		}
	}
	m.SetEvents(events)
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Selected() (models.Event, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Event, ok
}

// Filtering reports whether the user is typing a filter, in which case keys
// belong to the list.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddEventMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditEventMsg{Event: e} }
			}
		case key.Matches(msg, m.keys.Delete):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteEventMsg{ID: e.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No events yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
