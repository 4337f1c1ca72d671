package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/models"
)

var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// FormatTime renders a 24-hour HH:MM string for display. The 24h format
// returns the input unchanged; any other format converts to 12-hour clock
// with an AM/PM suffix and no leading zero on the hour. Input that is not
// HH:MM is returned as is.
func FormatTime(timeStr string, format models.TimeFormat) string {
	if format == models.TimeFormat24h {
		return timeStr
	}

	h, m, ok := splitClock(timeStr)
	if !ok {
		return timeStr
	}

	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, period)
}

func splitClock(timeStr string) (int, int, bool) {
	hs, ms, found := strings.Cut(timeStr, ":")
	if !found {
		return 0, 0, false
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// FormatDate renders a calendar date using one of the supported patterns.
// Unrecognized patterns fall back to the long locale form, e.g. "March 5, 2024".
func FormatDate(date time.Time, pattern models.DateFormat) string {
	switch pattern {
	case models.DateFormatUS:
		return date.Format("01/02/2006")
	case models.DateFormatEU:
		return date.Format("02/01/2006")
	case models.DateFormatISO:
		return date.Format(constants.DateFormat)
	default:
		return date.Format(constants.DefaultLocaleDateLayout)
	}
}

// WeekdayLabels returns the seven short weekday names starting with the
// configured first day of the week.
func WeekdayLabels(start models.WeekStartDay) []string {
	offset := 0
	if start == models.WeekStartMonday {
		offset = 1
	}
	labels := make([]string, 0, len(weekdayLabels))
	for i := range weekdayLabels {
		labels = append(labels, weekdayLabels[(i+offset)%len(weekdayLabels)])
	}
	return labels
}

// FormatEventWhen renders an event's date and time with the user's preferences.
func FormatEventWhen(e models.Event, s models.Settings) string {
	return FormatDate(e.Date, s.DateFormat) + " " + FormatTime(e.Time, s.TimeFormat)
}
