package calendar

import (
	"fmt"

	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/events"
	"github.com/julianstephens/daypilot/internal/utils"
)

type EditCmd struct {
	ID          string  `arg:"" help:"Event ID."`
	Title       *string `help:"New title."`
	Date        *string `help:"New date (YYYY-MM-DD)."`
	Time        *string `help:"New start time (HH:MM)."`
	Category    *string `help:"New category (work|personal|health|other)."`
	Description *string `help:"New description. Pass an empty string to clear it."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	in := events.Input{
		Title:       c.Title,
		Date:        c.Date,
		Time:        c.Time,
		Description: c.Description,
		Category:    c.Category,
	}
	if in == (events.Input{}) {
		ctx.Println("No changes specified. Use --title, --date, --time, --category or --description.")
		return nil
	}

	mgr, err := ctx.Events()
	if err != nil {
		return err
	}

	updated, found, err := mgr.Edit(c.ID, in)
	if !found {
		return fmt.Errorf("event not found: %s", c.ID)
	}
	if err != nil {
		return err
	}
	if err := ctx.PersistError(); err != nil {
		return err
	}

	ctx.Printf("✓ Updated %q (%s)\n", updated.Title, utils.FormatEventWhen(updated, ctx.Settings().Get()))
	return nil
}
