package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverlappingEvents ConflictType = "overlapping_events"
	ConflictDuplicateEvent    ConflictType = "duplicate_event"
	ConflictInvalidDateTime   ConflictType = "invalid_datetime"
	ConflictInvalidCategory   ConflictType = "invalid_category"
)

// Conflict represents a detected problem in the stored events
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD
	Items       []string // Event titles involved
	TimeRange   string   // Human-readable time range (if applicable)
	EventIDs    []string // IDs of events involved (for auto-fixing)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks events for conflicts. Each event occupies Duration from
// its start time when checking overlaps.
type Validator struct {
	Duration time.Duration
}

// New creates a Validator using the default event length
func New() *Validator {
	return &Validator{Duration: constants.DefaultEventDurationMin * time.Minute}
}

// ValidateEvents checks every event
func (v *Validator) ValidateEvents(events []models.Event) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byDay := make(map[string][]models.Event)
	var days []string
	for _, e := range events {
		if !isValidTimeFormat(e.Time) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("%s: Event \"%s\" has invalid time: %s", e.DateString(), e.Title, e.Time),
				Date:        e.DateString(),
				Items:       []string{e.Title},
				EventIDs:    []string{e.ID},
			})
			continue
		}
		if !e.Category.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidCategory,
				Description: fmt.Sprintf("%s: Event \"%s\" has unknown category: %q", e.DateString(), e.Title, e.Category),
				Date:        e.DateString(),
				Items:       []string{e.Title},
				EventIDs:    []string{e.ID},
			})
		}

		key := e.DateString()
		if _, ok := byDay[key]; !ok {
			days = append(days, key)
		}
		byDay[key] = append(byDay[key], e)
	}

	sort.Strings(days)
	for _, day := range days {
		result.Conflicts = append(result.Conflicts, v.validateDay(day, byDay[day])...)
	}
	return result
}

// ValidateDay checks only the events on date's calendar day
func (v *Validator) ValidateDay(events []models.Event, date time.Time) ValidationResult {
	var onDay []models.Event
	for _, e := range events {
		if utils.SameDay(e.Date, date) {
			onDay = append(onDay, e)
		}
	}
	return v.ValidateEvents(onDay)
}

func (v *Validator) validateDay(day string, events []models.Event) []Conflict {
	var conflicts []Conflict

	// Duplicates: same title at the same time
	seen := make(map[string][]models.Event)
	var order []string
	for _, e := range events {
		key := strings.ToLower(strings.TrimSpace(e.Title)) + "@" + e.Time
		if _, ok := seen[key]; !ok {
			order = append(order, key)
		}
		seen[key] = append(seen[key], e)
	}
	duplicate := make(map[string]bool)
	for _, key := range order {
		group := seen[key]
		if len(group) < 2 {
			continue
		}
		ids := make([]string, len(group))
		for i, e := range group {
			ids[i] = e.ID
			duplicate[e.ID] = true
		}
		conflicts = append(conflicts, Conflict{
			Type:        ConflictDuplicateEvent,
			Description: fmt.Sprintf("%s: Duplicate event \"%s\" at %s (IDs: %v)", day, group[0].Title, group[0].Time, ids),
			Date:        day,
			Items:       []string{group[0].Title},
			TimeRange:   group[0].Time,
			EventIDs:    ids,
		})
	}

	sorted := append([]models.Event(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})

	// O(n²) per day, fine for a personal calendar
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			a, b := sorted[i], sorted[j]
			if duplicate[a.ID] && duplicate[b.ID] && a.Time == b.Time {
				continue
			}
			if !v.overlaps(a.Time, b.Time) {
				break
			}
			conflicts = append(conflicts, Conflict{
				Type: ConflictOverlappingEvents,
				Description: fmt.Sprintf("%s: Events overlap: \"%s\" (%s) and \"%s\" (%s)",
					day, a.Title, v.timeRange(a.Time), b.Title, v.timeRange(b.Time)),
				Date:      day,
				Items:     []string{a.Title, b.Title},
				TimeRange: v.timeRange(a.Time),
				EventIDs:  []string{a.ID, b.ID},
			})
		}
	}
	return conflicts
}

// overlaps reports whether an event starting at later begins before one
// starting at earlier ends. earlier must not be after later.
func (v *Validator) overlaps(earlier, later string) bool {
	start1, err1 := utils.ParseTimeToMinutes(earlier)
	start2, err2 := utils.ParseTimeToMinutes(later)
	if err1 != nil || err2 != nil {
		return false
	}
	return start2 < start1+int(v.Duration.Minutes())
}

func (v *Validator) timeRange(start string) string {
	minutes, err := utils.ParseTimeToMinutes(start)
	if err != nil {
		return start
	}
	end := minutes + int(v.Duration.Minutes())
	if end >= 24*60 {
		end = 24*60 - 1
	}
	return start + "-" + utils.MinutesToTime(end)
}

func isValidTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

// AutoFixDuplicateEvents deletes every duplicate but the first of each group.
func AutoFixDuplicateEvents(conflicts []Conflict, deleteFunc func(id string) error) []FixAction {
	var actions []FixAction
	for _, conflict := range conflicts {
		if conflict.Type != ConflictDuplicateEvent || len(conflict.EventIDs) < 2 {
			continue
		}
		for _, id := range conflict.EventIDs[1:] {
			if err := deleteFunc(id); err != nil {
				actions = append(actions, FixAction{
					Action:         fmt.Sprintf("Failed to delete duplicate event %s: %v", id, err),
					SourceConflict: conflict,
				})
				continue
			}
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Deleted duplicate event \"%s\" (%s)", conflict.Items[0], id),
				SourceConflict: conflict,
			})
		}
	}
	return actions
}
