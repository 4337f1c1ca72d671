package transfer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/ics"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/utils"
)

const (
	formatICS  = "ics"
	formatJSON = "json"
)

type ExportCmd struct {
	Format string `short:"f" enum:"ics,json" default:"ics" help:"Output format (ics or json)."`
	Output string `short:"o" help:"Write to this file instead of stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.Events()
	if err != nil {
		return err
	}
	events := mgr.Sorted()

	var sb strings.Builder
	written, err := write(&sb, c.Format, events)
	if err != nil {
		return err
	}

	if c.Output == "" {
		_, err := io.WriteString(ctx.Stdout(), sb.String())
		return err
	}

	path, err := utils.ExpandHome(c.Output)
	if err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(path, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	ctx.Printf("✓ Exported %d event(s) to %s\n", written, path)
	return nil
}

func write(w io.Writer, format string, events []models.Event) (int, error) {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if events == nil {
			events = []models.Event{}
		}
		if err := enc.Encode(events); err != nil {
			return 0, fmt.Errorf("failed to encode events: %w", err)
		}
		return len(events), nil
	case formatICS, "":
		return ics.Export(w, events, time.Now())
	}
	return 0, fmt.Errorf("unsupported export format %q", format)
}

// formatFor picks the format from a file extension.
func formatFor(path string) (string, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".ics"), strings.HasSuffix(lower, ".ical"):
		return formatICS, nil
	case strings.HasSuffix(lower, ".json"):
		return formatJSON, nil
	}
	return "", fmt.Errorf("cannot tell the format of %s (expected .ics or .json)", path)
}

func open(path string) (*os.File, error) {
	path, err := utils.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}
