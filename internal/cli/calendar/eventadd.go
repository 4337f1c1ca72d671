package calendar

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/events"
	"github.com/julianstephens/daypilot/internal/utils"
)

type AddCmd struct {
	Title       string `arg:"" help:"Event title."`
	Date        string `short:"d" help:"Date (YYYY-MM-DD). Defaults to today."`
	Time        string `short:"t" help:"Start time (HH:MM, 24-hour)." default:"09:00"`
	Category    string `short:"c" help:"Category (work|personal|health|other). Defaults to the configured default category."`
	Description string `short:"m" help:"Optional description."`
}

func (c *AddCmd) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("event title cannot be empty")
	}
	return nil
}

func (c *AddCmd) input() events.Input {
	in := events.Input{Title: &c.Title, Time: &c.Time}
	if c.Date != "" {
		in.Date = &c.Date
	}
	if c.Category != "" {
		in.Category = &c.Category
	}
	if c.Description != "" {
		in.Description = &c.Description
	}
	return in
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.Events()
	if err != nil {
		return err
	}
	prefs := ctx.Settings().Get()

	e, err := c.input().NewEvent(mgr.Now(), prefs.DefaultEventCategory)
	if err != nil {
		return err
	}
	stored := mgr.Add(e)
	if err := ctx.PersistError(); err != nil {
		return err
	}

	ctx.Printf("✓ Added %q on %s\n", stored.Title, utils.FormatEventWhen(stored, prefs))
	ctx.Printf("  ID: %s\n", stored.ID)
	return nil
}
