package calendar

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/utils"
	"github.com/julianstephens/daypilot/internal/validation"
)

type ValidateCmd struct {
	Date string `help:"Only check this day (YYYY-MM-DD)."`
	Fix  bool   `help:"Delete duplicate events, keeping the first of each."`
}

func (c *ValidateCmd) Validate() error {
	if c.Date == "" {
		return nil
	}
	if _, err := utils.ParseDate(strings.TrimSpace(c.Date)); err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", c.Date)
	}
	return nil
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.Events()
	if err != nil {
		return err
	}

	validator := validation.New()
	var result validation.ValidationResult
	if c.Date != "" {
		date, _ := utils.ParseDate(strings.TrimSpace(c.Date))
		result = validator.ValidateDay(mgr.All(), date)
	} else {
		result = validator.ValidateEvents(mgr.All())
	}

	ctx.Printf("%s", result.FormatReport())
	if !result.HasConflicts() || !c.Fix {
		return nil
	}

	actions := validation.AutoFixDuplicateEvents(result.Conflicts, func(id string) error {
		if !mgr.Delete(id) {
			return fmt.Errorf("event not found")
		}
		return ctx.PersistError()
	})
	if len(actions) == 0 {
		ctx.Println("\nNothing to fix automatically.")
		return nil
	}

	ctx.Println("\nFixes applied:")
	for _, a := range actions {
		ctx.Printf("  • %s\n", a.Action)
	}
	return nil
}
