package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing SQLite database before initialization."`
	Source string `help:"Storage target (path, .json file or connection string) to copy events and settings from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if c.Force {
		ctx.Reload()
	}
	ctx.Printf("Initialized daypilot storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyFrom(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath, ok := ctx.SQLitePath()
	if !ok {
		return fmt.Errorf("--force only applies to SQLite databases")
	}
	if c.Source != "" {
		absDB, err1 := filepath.Abs(dbPath)
		absSource, err2 := filepath.Abs(c.Source)
		if err1 == nil && err2 == nil && absDB == absSource {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	ctx.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}

// copyFrom copies events (keeping their ids) and the raw settings record.
func (c *InitCmd) copyFrom(ctx *cli.Context) error {
	source, err := cli.OpenStore(c.Source)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source storage: %w", err)
	}
	defer source.Close()

	ctx.Println("  Copying settings...")
	record, err := source.Get(constants.SettingsStorageKey)
	switch {
	case err == nil:
		if err := ctx.Store.Set(constants.SettingsStorageKey, record); err != nil {
			return fmt.Errorf("failed to save settings to destination: %w", err)
		}
	case errors.Is(err, storage.ErrNotFound):
		ctx.Println("    No settings stored in source")
	default:
		return fmt.Errorf("failed to read settings from source: %w", err)
	}

	ctx.Println("  Copying events...")
	events, err := source.GetAllEvents()
	if err != nil {
		return fmt.Errorf("failed to get events from source: %w", err)
	}
	for _, e := range events {
		if err := ctx.Store.AddEvent(e); err != nil {
			return fmt.Errorf("failed to add event %s: %w", e.ID, err)
		}
	}
	ctx.Printf("    Copied %d events\n", len(events))

	ctx.Reload()
	return nil
}
