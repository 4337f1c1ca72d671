package calendar

import (
	"time"

	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/utils"
)

type ListCmd struct {
	Category string `short:"c" help:"Only show events in this category."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	var filter models.Category
	if c.Category != "" {
		parsed, err := models.ParseCategory(c.Category)
		if err != nil {
			return err
		}
		filter = parsed
	}

	mgr, err := ctx.Events()
	if err != nil {
		return err
	}
	prefs := ctx.Settings().Get()

	var list []models.Event
	for _, e := range mgr.Sorted() {
		if filter == "" || e.Category == filter {
			list = append(list, e)
		}
	}

	if len(list) == 0 {
		ctx.Println("No events found.")
		return nil
	}

	var current time.Time
	for i, e := range list {
		if i == 0 || !utils.SameDay(current, e.Date) {
			if i > 0 {
				ctx.Println()
			}
			current = e.Date
			ctx.Printf("%s (%s)\n", utils.FormatDate(e.Date, prefs.DateFormat), e.Date.Weekday())
		}
		ctx.Printf("  %s\n", cli.FormatEventLine(e, prefs, false))
	}
	return nil
}

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.Events()
	if err != nil {
		return err
	}
	printDay(ctx, mgr.Now(), mgr.EventsToday())
	return nil
}

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.Events()
	if err != nil {
		return err
	}

	date := mgr.Now()
	if c.Date != "" {
		date, err = utils.ParseDate(c.Date)
		if err != nil {
			return err
		}
	}
	printDay(ctx, date, mgr.EventsOn(date))
	return nil
}

func printDay(ctx *cli.Context, date time.Time, list []models.Event) {
	prefs := ctx.Settings().Get()
	ctx.Printf("%s (%s)\n", utils.FormatDate(date, prefs.DateFormat), date.Weekday())
	if len(list) == 0 {
		ctx.Println("  No events scheduled")
		return
	}
	for _, e := range list {
		ctx.Printf("  %s\n", cli.FormatEventLine(e, prefs, false))
	}
}
