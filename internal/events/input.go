package events

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/utils"
)

// Input is user-entered event data as strings, shared by the CLI flags, the
// HTTP API and the TUI form. Nil fields were not supplied.
type Input struct {
	Title       *string `json:"title,omitempty"`
	Date        *string `json:"date,omitempty"`
	Time        *string `json:"time,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// NewEvent builds a validated event. A missing date is today, a missing time
// is 09:00 and a missing category is def.
func (in Input) NewEvent(now time.Time, def models.Category) (models.Event, error) {
	e := models.Event{
		Date:     utils.StartOfDay(now),
		Time:     constants.DefaultEventTime,
		Category: def,
	}
	patch, err := in.Patch()
	if err != nil {
		return models.Event{}, err
	}
	patch.Apply(&e)
	if err := e.Validate(); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// Patch converts the supplied fields, rejecting any that are malformed.
func (in Input) Patch() (models.EventPatch, error) {
	var p models.EventPatch

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return p, fmt.Errorf("event title cannot be empty")
		}
		p.Title = &title
	}
	if in.Date != nil {
		d, err := utils.ParseDate(strings.TrimSpace(*in.Date))
		if err != nil {
			return p, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", *in.Date)
		}
		p.Date = &d
	}
	if in.Time != nil {
		t := strings.TrimSpace(*in.Time)
		parsed, err := utils.ParseTime(t)
		if err != nil {
			return p, fmt.Errorf("invalid time %q (expected HH:MM)", *in.Time)
		}
		canonical := parsed.Format(constants.TimeFormat)
		p.Time = &canonical
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		p.Description = &desc
	}
	if in.Category != nil {
		c, err := models.ParseCategory(*in.Category)
		if err != nil {
			return p, err
		}
		p.Category = &c
	}
	return p, nil
}

// Edit validates the patch against the current event and applies it.
// found is false for an unknown id.
func (m *Manager) Edit(id string, in Input) (updated models.Event, found bool, err error) {
	patch, err := in.Patch()
	if err != nil {
		return models.Event{}, true, err
	}

	current, ok := m.Get(id)
	if !ok {
		return models.Event{}, false, nil
	}
	patch.Apply(&current)
	if err := current.Validate(); err != nil {
		return models.Event{}, true, err
	}

	if !m.Update(id, patch) {
		return models.Event{}, false, nil
	}
	updated, _ = m.Get(id)
	return updated, true, nil
}
