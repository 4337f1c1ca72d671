package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/daypilot/internal/constants"
)

type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryOther    Category = "other"
)

// Categories lists every category in display order
var Categories = []Category{CategoryWork, CategoryPersonal, CategoryHealth, CategoryOther}

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q (expected one of work, personal, health, other)", s)
	}
	return c, nil
}

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryHealth, CategoryOther:
		return true
	}
	return false
}

func (c Category) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"` // only year/month/day are meaningful
	Time        string    `json:"time"` // HH:MM, 24-hour
	Description string    `json:"description,omitempty"`
	Category    Category  `json:"category"`
}

// eventJSON carries the date as YYYY-MM-DD on the wire
type eventJSON struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventJSON{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.DateString(),
		Time:        e.Time,
		Description: e.Description,
		Category:    e.Category,
	})
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var raw eventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, err := parseEventDate(raw.Date)
	if err != nil {
		return err
	}
	*e = Event{
		ID:          raw.ID,
		Title:       raw.Title,
		Date:        date,
		Time:        raw.Time,
		Description: raw.Description,
		Category:    raw.Category,
	}
	return nil
}

// parseEventDate accepts YYYY-MM-DD and full RFC3339 timestamps.
func parseEventDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if d, err := time.ParseInLocation(constants.DateFormat, s, time.Local); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid event date %q (expected YYYY-MM-DD)", s)
	}
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
}

// DateString returns the calendar date as YYYY-MM-DD.
func (e Event) DateString() string {
	if e.Date.IsZero() {
		return ""
	}
	return e.Date.Format(constants.DateFormat)
}

// Validate checks the fields a user supplies when creating an event.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("event title cannot be empty")
	}

	if e.Date.IsZero() {
		return fmt.Errorf("event date cannot be empty")
	}

	if _, err := time.Parse(constants.TimeFormat, e.Time); err != nil {
		return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}

	if !e.Category.Valid() {
		return fmt.Errorf("invalid category %q", e.Category)
	}

	return nil
}

// EventPatch holds the fields of an update. Nil fields are left unchanged;
// there is no ID field, so an update never alters identity.
type EventPatch struct {
	Title       *string
	Date        *time.Time
	Time        *string
	Description *string
	Category    *Category
}

// Apply merges the supplied fields into e.
func (p EventPatch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
}

// Empty reports whether the patch changes nothing.
func (p EventPatch) Empty() bool {
	return p.Title == nil && p.Date == nil && p.Time == nil && p.Description == nil && p.Category == nil
}
