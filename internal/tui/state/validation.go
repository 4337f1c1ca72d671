package state

import (
	"github.com/julianstephens/daypilot/internal/validation"
)

// UpdateValidationStatus checks today's events for conflicts
func (m *Model) UpdateValidationStatus() {
	result := validation.New().ValidateEvents(m.Events.EventsToday())
	m.ValidationConflicts = result.Conflicts
}
