package transfer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/ics"
	"github.com/julianstephens/daypilot/internal/logger"
	"github.com/julianstephens/daypilot/internal/models"
)

type ImportCmd struct {
	File   string `arg:"" help:"Calendar (.ics) or event list (.json) to import."`
	DryRun bool   `help:"Show what would be imported without saving."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	format, err := formatFor(c.File)
	if err != nil {
		return err
	}

	f, err := open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	def := ctx.Settings().Get().DefaultEventCategory
	incoming, err := read(f, format, def)
	if err != nil {
		return err
	}

	if len(incoming) == 0 {
		ctx.Println("No events found to import.")
		return nil
	}

	mgr, err := ctx.Events()
	if err != nil {
		return err
	}

	if c.DryRun {
		s := ctx.Settings().Get()
		ctx.Printf("Would import %d event(s):\n", len(incoming))
		for _, e := range incoming {
			ctx.Println("  " + cli.FormatEventLine(e, s, true))
		}
		return nil
	}

	ctx.PerformAutomaticBackup()

	for _, e := range incoming {
		mgr.Add(e)
	}
	if err := ctx.PersistError(); err != nil {
		return fmt.Errorf("import incomplete: %w", err)
	}
	ctx.Printf("✓ Imported %d event(s) from %s\n", len(incoming), c.File)
	return nil
}

func read(r io.Reader, format string, def models.Category) ([]models.Event, error) {
	if format == formatICS {
		return ics.Import(r, def)
	}

	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse event list: %w", err)
	}

	var out []models.Event
	for i, item := range raw {
		var e models.Event
		if err := json.Unmarshal(item, &e); err != nil {
			logger.Warn("Skipping unreadable event", "index", i, "error", err)
			continue
		}
		if e.Category == "" {
			e.Category = def
		}
		if err := e.Validate(); err != nil {
			logger.Warn("Skipping invalid event", "index", i, "error", err)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
