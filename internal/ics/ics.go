// Package ics converts events to and from iCalendar files.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/logger"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/utils"
)

const (
	productID = "-//julianstephens//daypilot//EN"

	localLayout  = "20060102T150405"
	utcLayout    = "20060102T150405Z"
	allDayLayout = "20060102"

	allDayTime = "00:00"
)

// Export writes events as a VCALENDAR with one VEVENT each. Events whose
// time cannot be parsed are skipped with a warning.
func Export(w io.Writer, events []models.Event, stamp time.Time) (int, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	written := 0
	for _, e := range events {
		start, err := utils.CombineDateAndTime(e.Date, e.Time)
		if err != nil {
			logger.Warn("Skipping event with bad time", "id", e.ID, "time", e.Time)
			continue
		}
		end := start.Add(constants.DefaultEventDurationMin * time.Minute)

		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(stamp)
		// Floating local times, as entered.
		ve.SetProperty(ical.ComponentPropertyDtStart, start.Format(localLayout))
		ve.SetProperty(ical.ComponentPropertyDtEnd, end.Format(localLayout))
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Category != "" {
			ve.SetProperty(ical.ComponentPropertyCategories, strings.ToUpper(string(e.Category)))
		}
		written++
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return 0, fmt.Errorf("failed to write calendar: %w", err)
	}
	return written, nil
}

// Import reads the VEVENTs of a calendar. IDs are left empty for the caller
// to assign. Malformed events are skipped with a warning; an unknown or
// missing category becomes def.
func Import(r io.Reader, def models.Category) ([]models.Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	var out []models.Event
	for _, ve := range cal.Events() {
		e, err := fromVEvent(ve, def)
		if err != nil {
			logger.Warn("Skipping calendar event", "uid", ve.Id(), "error", err)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func fromVEvent(ve *ical.VEvent, def models.Category) (models.Event, error) {
	var e models.Event

	summary := ve.GetProperty(ical.ComponentPropertySummary)
	if summary == nil || strings.TrimSpace(summary.Value) == "" {
		return e, errors.New("missing SUMMARY")
	}
	e.Title = strings.TrimSpace(summary.Value)

	dtstart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtstart == nil {
		return e, errors.New("missing DTSTART")
	}
	start, allDay, err := parseDateTime(dtstart.Value, dtstart.ICalParameters)
	if err != nil {
		return e, err
	}
	e.Date = utils.StartOfDay(start)
	e.Time = start.Format(constants.TimeFormat)
	if allDay {
		e.Time = allDayTime
	}

	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		e.Description = p.Value
	}

	e.Category = def
	if p := ve.GetProperty(ical.ComponentPropertyCategories); p != nil {
		for _, name := range strings.Split(p.Value, ",") {
			if c, err := models.ParseCategory(name); err == nil {
				e.Category = c
				break
			}
		}
	}
	return e, nil
}

// parseDateTime handles UTC, TZID-qualified, floating and all-day values.
// The result is in the local zone.
func parseDateTime(value string, params map[string][]string) (time.Time, bool, error) {
	value = strings.TrimSpace(value)

	if isDateOnly(value, params) {
		t, err := time.ParseInLocation(allDayLayout, value, time.Local)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("bad DTSTART %q: %w", value, err)
		}
		return t, true, nil
	}

	if strings.HasSuffix(value, "Z") {
		t, err := time.Parse(utcLayout, value)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("bad DTSTART %q: %w", value, err)
		}
		return t.Local(), false, nil
	}

	loc := time.Local
	if tz := params[string(ical.ParameterTzid)]; len(tz) > 0 {
		if l, err := time.LoadLocation(tz[0]); err == nil {
			loc = l
		} else {
			logger.Debug("Unknown TZID, using local time", "tzid", tz[0])
		}
	}
	t, err := time.ParseInLocation(localLayout, value, loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("bad DTSTART %q: %w", value, err)
	}
	return t.In(time.Local), false, nil
}

func isDateOnly(value string, params map[string][]string) bool {
	if vs := params[string(ical.ParameterValue)]; len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(value, "T")
}
