package settings

import (
	"fmt"
	"time"

	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	TimeFormat      *string `help:"Clock style: 12h or 24h." name:"time-format"`
	WeekStart       *string `help:"First day of the week: sunday or monday." name:"week-start"`
	DefaultCategory *string `help:"Category for new events: work, personal, health or other." name:"default-category"`
	Notifications   *string `help:"Enable or disable reminders (on/off)."`
	DateFormat      *string `help:"Date pattern: MM/dd/yyyy, dd/MM/yyyy or yyyy-MM-dd." name:"date-format"`

	Reset bool `help:"Restore every setting to its default."`
	Yes   bool `short:"y" help:"Skip the reset confirmation."`
}

var sampleDate = time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local)

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	store := ctx.Settings()

	if c.Reset {
		if !c.Yes {
			ok, err := ctx.Confirm("Reset all settings to their defaults?")
			if err != nil {
				return err
			}
			if !ok {
				ctx.Println("Reset cancelled.")
				return nil
			}
		}
		ctx.PerformAutomaticBackup()
		store.Reset()
		ctx.Println("Settings reset to defaults.")
		return nil
	}

	updates := []struct {
		key   string
		value *string
	}{
		{constants.SettingTimeFormat, c.TimeFormat},
		{constants.SettingWeekStartDay, c.WeekStart},
		{constants.SettingDefaultEventCategory, c.DefaultCategory},
		{constants.SettingNotifications, c.Notifications},
		{constants.SettingDateFormat, c.DateFormat},
	}

	// Parse everything first so a bad flag leaves the record untouched.
	parsed := make(map[string]any)
	for _, u := range updates {
		if u.value == nil {
			continue
		}
		v, err := models.ParseSettingValue(u.key, *u.value)
		if err != nil {
			return err
		}
		parsed[u.key] = v
	}

	if len(parsed) == 0 {
		if !c.List {
			ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
			return nil
		}
		printSettings(ctx, store.Get())
		return nil
	}

	for _, u := range updates {
		v, ok := parsed[u.key]
		if !ok {
			continue
		}
		if err := store.SetField(u.key, v); err != nil {
			return fmt.Errorf("failed to update %s: %w", u.key, err)
		}
	}
	ctx.Println("Settings updated successfully.")

	if c.List {
		printSettings(ctx, store.Get())
	}
	return nil
}

func printSettings(ctx *cli.Context, s models.Settings) {
	ctx.Println("Current Settings:")
	ctx.Printf("  Time Format:       %s\n", s.TimeFormat)
	ctx.Printf("  Week Starts On:    %s\n", s.WeekStartDay)
	ctx.Printf("  Default Category:  %s\n", s.DefaultEventCategory.Label())
	ctx.Printf("  Notifications:     %s\n", onOff(s.Notifications))
	ctx.Printf("  Date Format:       %s (e.g. %s)\n", s.DateFormat, utils.FormatDate(sampleDate, s.DateFormat))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
