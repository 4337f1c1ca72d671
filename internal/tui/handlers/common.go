package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/tui/state"
	"github.com/julianstephens/daypilot/internal/utils"
)

func categoryOptions() []huh.Option[models.Category] {
	opts := make([]huh.Option[models.Category], 0, len(models.Categories))
	for _, c := range models.Categories {
		opts = append(opts, huh.NewOption(c.Label(), c))
	}
	return opts
}

// NewEventForm creates a new form for adding or editing an event
func NewEventForm(fm *state.EventFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(func(s string) error {
					if _, err := utils.ParseDate(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("invalid date format, use YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().
				Title("Time (HH:MM)").
				Value(&fm.Time).
				Validate(func(s string) error {
					if !utils.ValidateTimeFormat(strings.TrimSpace(s)) {
						return fmt.Errorf("invalid time format, use HH:MM")
					}
					return nil
				}),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&fm.Category),
			huh.NewText().
				Title("Description (optional)").
				Value(&fm.Description),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewSettingsForm creates a new form for editing settings
func NewSettingsForm(fm *state.SettingsFormModel) *huh.Form {
	dateOpts := make([]huh.Option[models.DateFormat], 0, len(models.DateFormats))
	for _, f := range models.DateFormats {
		dateOpts = append(dateOpts, huh.NewOption(string(f), f))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.TimeFormat]().
				Title("Time Format").
				Options(
					huh.NewOption("12-hour (2:30 PM)", models.TimeFormat12h),
					huh.NewOption("24-hour (14:30)", models.TimeFormat24h),
				).
				Value(&fm.TimeFormat),
			huh.NewSelect[models.DateFormat]().
				Title("Date Format").
				Options(dateOpts...).
				Value(&fm.DateFormat),
			huh.NewSelect[models.WeekStartDay]().
				Title("Week Starts On").
				Options(
					huh.NewOption("Sunday", models.WeekStartSunday),
					huh.NewOption("Monday", models.WeekStartMonday),
				).
				Value(&fm.WeekStartDay),
		),
		huh.NewGroup(
			huh.NewSelect[models.Category]().
				Title("Default Event Category").
				Options(categoryOptions()...).
				Value(&fm.DefaultEventCategory),
			huh.NewConfirm().
				Title("Enable Notifications").
				Value(&fm.Notifications),
		),
	).WithTheme(huh.ThemeDracula())
}
