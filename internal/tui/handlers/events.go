package handlers

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/events"
	"github.com/julianstephens/daypilot/internal/logger"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/tui/components/calendar"
	"github.com/julianstephens/daypilot/internal/tui/components/eventlist"
	"github.com/julianstephens/daypilot/internal/tui/components/today"
	"github.com/julianstephens/daypilot/internal/tui/state"
)

// HandleEventFormState handles the add and edit event states
func HandleEventFormState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.FormError = ""
		m.State = m.PreviousState
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		if err := saveEventForm(m); err != nil {
			// Stay in the form so the user can fix it or cancel with esc
			m.FormError = err.Error()
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		m.FormError = ""
		m.EditingID = ""
		m.RefreshEvents()
		m.State = m.PreviousState
	case huh.StateAborted:
		m.FormError = ""
		m.EditingID = ""
		m.State = m.PreviousState
	}
	return tea.Batch(cmds...)
}

func saveEventForm(m *state.Model) error {
	fm := m.EventForm
	category := string(fm.Category)
	in := events.Input{
		Title:       &fm.Title,
		Date:        &fm.Date,
		Time:        &fm.Time,
		Category:    &category,
		Description: &fm.Description,
	}

	if m.EditingID == "" {
		e, err := in.NewEvent(m.Events.Now(), m.Settings.Get().DefaultEventCategory)
		if err != nil {
			return err
		}
		added := m.Events.Add(e)
		logger.Debug("Added event from TUI", "id", added.ID)
		m.StatusMessage = "Added " + added.Title
		return nil
	}

	updated, found, err := m.Events.Edit(m.EditingID, in)
	if err != nil {
		return err
	}
	if !found {
		m.StatusMessage = "Event no longer exists"
		return nil
	}
	m.StatusMessage = "Updated " + updated.Title
	return nil
}

func openEventForm(m *state.Model, fm *state.EventFormModel, editingID string, next constants.SessionState) tea.Cmd {
	m.PreviousState = m.State
	m.EventForm = fm
	m.EditingID = editingID
	m.FormError = ""
	m.Form = NewEventForm(m.EventForm)
	m.State = next
	return m.Form.Init()
}

func newEventFormModel(m *state.Model, date time.Time) *state.EventFormModel {
	return &state.EventFormModel{
		Date:     date.Format(constants.DateFormat),
		Time:     constants.DefaultEventTime,
		Category: m.Settings.Get().DefaultEventCategory,
	}
}

func editEventFormModel(e models.Event) *state.EventFormModel {
	return &state.EventFormModel{
		Title:       e.Title,
		Date:        e.DateString(),
		Time:        e.Time,
		Category:    e.Category,
		Description: e.Description,
	}
}

// HandleEventMessages handles messages from the calendar, list and today views
func HandleEventMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case calendar.AddEventMsg:
		return true, openEventForm(m, newEventFormModel(m, msg.Date), "", constants.StateAddEvent)

	case today.AddEventMsg:
		return true, openEventForm(m, newEventFormModel(m, msg.Date), "", constants.StateAddEvent)

	case eventlist.AddEventMsg:
		return true, openEventForm(m, newEventFormModel(m, m.Events.Now()), "", constants.StateAddEvent)

	case eventlist.EditEventMsg:
		return true, openEventForm(m, editEventFormModel(msg.Event), msg.Event.ID, constants.StateEditEvent)

	case eventlist.DeleteEventMsg:
		m.PreviousState = m.State
		m.DeleteID = msg.ID
		m.State = constants.StateConfirmDelete
		return true, nil

	case calendar.MonthChangedMsg:
		m.Calendar.SetEvents(m.Events.EventsInMonth(msg.Year, msg.Month))
		return true, nil
	}
	return false, nil
}
