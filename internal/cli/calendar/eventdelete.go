package calendar

import (
	"fmt"

	"github.com/julianstephens/daypilot/internal/cli"
)

type DeleteCmd struct {
	ID  string `arg:"" help:"Event ID."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.Events()
	if err != nil {
		return err
	}

	e, ok := mgr.Get(c.ID)
	if !ok {
		return fmt.Errorf("event not found: %s", c.ID)
	}

	if !c.Yes {
		confirmed, err := ctx.Confirm(fmt.Sprintf("Delete %q?", e.Title))
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	mgr.Delete(c.ID)
	if err := ctx.PersistError(); err != nil {
		return err
	}
	ctx.Printf("✓ Deleted %q\n", e.Title)
	return nil
}
