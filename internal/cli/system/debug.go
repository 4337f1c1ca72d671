package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/storage"
	"github.com/julianstephens/daypilot/internal/storage/postgres"
	"github.com/julianstephens/daypilot/internal/storage/sqlite"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show storage location."`
	DumpEvent    *DebugDumpEventCmd    `cmd:"" help:"Dump one event as JSON."`
	DumpEvents   *DebugDumpEventsCmd   `cmd:"" help:"Dump every event as JSON, in storage order."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump the stored settings record and the values in effect."`
}

func printJSON(ctx *cli.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(data))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	var backend string
	switch ctx.Store.(type) {
	case *sqlite.Store:
		backend = "sqlite"
	case *postgres.Store:
		backend = "postgres"
	case *storage.JSONStore:
		backend = "json"
	case *storage.MemoryStore:
		backend = "memory"
	default:
		backend = fmt.Sprintf("%T", ctx.Store)
	}

	return printJSON(ctx, map[string]string{
		"path":    ctx.Store.GetConfigPath(),
		"backend": backend,
	})
}

type DebugDumpEventCmd struct {
	ID string `arg:"" help:"ID of the event to dump."`
}

func (cmd *DebugDumpEventCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Store.GetEvent(cmd.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("event not found: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get event: %w", err)
	}
	return printJSON(ctx, e)
}

type DebugDumpEventsCmd struct{}

func (cmd *DebugDumpEventsCmd) Run(ctx *cli.Context) error {
	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}
	if events == nil {
		events = []models.Event{}
	}
	return printJSON(ctx, events)
}

type DebugDumpSettingsCmd struct{}

type settingsDump struct {
	Key       string          `json:"key"`
	Stored    json.RawMessage `json:"stored"`
	Effective models.Settings `json:"effective"`
	Ignored   []string        `json:"ignored,omitempty"`
}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	raw, err := ctx.Store.Get(constants.SettingsStorageKey)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	effective, ignored := models.MergeSettings(raw)
	dump := settingsDump{
		Key:       constants.SettingsStorageKey,
		Stored:    json.RawMessage("null"),
		Effective: effective,
		Ignored:   ignored,
	}
	if len(raw) > 0 {
		if json.Valid(raw) {
			dump.Stored = raw
		} else {
			quoted, _ := json.Marshal(string(raw))
			dump.Stored = quoted
		}
	}
	return printJSON(ctx, dump)
}
