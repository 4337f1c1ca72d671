package notifier

import (
	"fmt"
	"time"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/logger"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/utils"
)

// DueReminders returns the events starting exactly leadMin minutes after now,
// compared at minute resolution. Events with an unparsable time are skipped.
func DueReminders(events []models.Event, now time.Time, leadMin int) []models.Event {
	if leadMin < 0 {
		leadMin = 0
	}
	target := now.Truncate(time.Minute).Add(time.Duration(leadMin) * time.Minute)

	var due []models.Event
	for _, e := range events {
		start, err := utils.CombineDateAndTime(e.Date, e.Time)
		if err != nil {
			logger.Debug("Skipping event with bad time", "id", e.ID, "time", e.Time)
			continue
		}
		if start.Equal(target) {
			due = append(due, e)
		}
	}
	return due
}

// Message renders the reminder text for e.
func Message(e models.Event, s models.Settings, leadMin int) string {
	at := utils.FormatTime(e.Time, s.TimeFormat)
	if leadMin <= 0 {
		return fmt.Sprintf("%s now (%s)", e.Title, at)
	}
	return fmt.Sprintf("%s in %d min (%s)", e.Title, leadMin, at)
}

// Tracker remembers which events were already announced so a watch loop
// sends each reminder once per event per day.
type Tracker struct {
	sent map[string]string
}

func NewTracker() *Tracker {
	return &Tracker{sent: make(map[string]string)}
}

// MarkSent records e as announced on day and reports whether it was new.
// Entries for other days are dropped.
func (t *Tracker) MarkSent(e models.Event, day time.Time) bool {
	key := day.Format(constants.DateFormat)
	for id, d := range t.sent {
		if d != key {
			delete(t.sent, id)
		}
	}
	if t.sent[e.ID] == key {
		return false
	}
	t.sent[e.ID] = key
	return true
}
