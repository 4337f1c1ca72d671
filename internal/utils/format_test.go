package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/daypilot/internal/models"
)

func TestFormatTime_24hIsIdentity(t *testing.T) {
	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 5, 30, 59} {
			in := fmt.Sprintf("%02d:%02d", h, m)
			assert.Equal(t, in, FormatTime(in, models.TimeFormat24h))
		}
	}
}

func TestFormatTime_12h(t *testing.T) {
	tests := map[string]string{
		"00:05": "12:05 AM",
		"01:00": "1:00 AM",
		"11:59": "11:59 AM",
		"12:30": "12:30 PM",
		"13:00": "1:00 PM",
		"23:45": "11:45 PM",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatTime(in, models.TimeFormat12h), in)
	}
}

func TestFormatTime_UnknownFormatUses12h(t *testing.T) {
	assert.Equal(t, "1:00 PM", FormatTime("13:00", models.TimeFormat("")))
	assert.Equal(t, "1:00 PM", FormatTime("13:00", models.TimeFormat("military")))
}

func TestFormatTime_InvalidInputPassesThrough(t *testing.T) {
	assert.Equal(t, "later", FormatTime("later", models.TimeFormat12h))
	assert.Equal(t, "25:00", FormatTime("25:00", models.TimeFormat12h))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)

	assert.Equal(t, "03/05/2024", FormatDate(d, models.DateFormatUS))
	assert.Equal(t, "05/03/2024", FormatDate(d, models.DateFormatEU))
	assert.Equal(t, "2024-03-05", FormatDate(d, models.DateFormatISO))
	assert.Equal(t, "March 5, 2024", FormatDate(d, models.DateFormat("d.M.yy")))
}

func TestWeekdayLabels(t *testing.T) {
	sunday := WeekdayLabels(models.WeekStartSunday)
	monday := WeekdayLabels(models.WeekStartMonday)

	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, sunday)
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, monday)
	assert.ElementsMatch(t, sunday, monday)
}

func TestWeekdayLabels_ReturnsFreshSlice(t *testing.T) {
	first := WeekdayLabels(models.WeekStartSunday)
	first[0] = "changed"
	assert.Equal(t, "Sun", WeekdayLabels(models.WeekStartSunday)[0])
}

func TestFormatEventWhen(t *testing.T) {
	e := models.Event{Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local), Time: "18:15"}
	s := models.DefaultSettings()
	assert.Equal(t, "03/05/2024 6:15 PM", FormatEventWhen(e, s))

	s.TimeFormat = models.TimeFormat24h
	s.DateFormat = models.DateFormatISO
	assert.Equal(t, "2024-03-05 18:15", FormatEventWhen(e, s))
}
