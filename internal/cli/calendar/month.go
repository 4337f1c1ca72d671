package calendar

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/utils"
)

type MonthCmd struct {
	Month string `arg:"" optional:"" help:"Month (YYYY-MM). Defaults to the current month."`
}

// Run prints the month grid with each day's event count, e.g. "12·3".
func (c *MonthCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.Events()
	if err != nil {
		return err
	}
	prefs := ctx.Settings().Get()

	now := mgr.Now()
	year, month := now.Year(), now.Month()
	if c.Month != "" {
		year, month, err = utils.ParseMonth(c.Month)
		if err != nil {
			return err
		}
	}

	byDay := mgr.EventsInMonth(year, month)

	ctx.Printf("%s %d\n", month, year)
	var header []string
	for _, label := range utils.WeekdayLabels(prefs.WeekStartDay) {
		header = append(header, fmt.Sprintf("%-6s", label))
	}
	ctx.Println(strings.TrimRight(strings.Join(header, ""), " "))

	total := 0
	for _, week := range utils.MonthGrid(year, month, prefs.WeekStartDay) {
		var row strings.Builder
		for _, day := range week {
			cell := ""
			if day > 0 {
				cell = fmt.Sprintf("%2d", day)
				if n := len(byDay[day]); n > 0 {
					cell += fmt.Sprintf("·%d", n)
					total += n
				}
			}
			row.WriteString(fmt.Sprintf("%-6s", cell))
		}
		ctx.Println(strings.TrimRight(row.String(), " "))
	}
	ctx.Printf("\n%d event(s) this month\n", total)
	return nil
}
