package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/daypilot/internal/backup"
	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/storage"
)

// warning is a check result that is reported but does not fail doctor.
type warning struct{ msg string }

func (w *warning) Error() string { return w.msg }

func warn(format string, args ...any) error {
	return &warning{msg: fmt.Sprintf(format, args...)}
}

type check struct {
	name string
	// needsDB checks are skipped when storage cannot be loaded
	needsDB bool
	run     func(ctx *cli.Context) error
}

var checks = []check{
	{"Schema version", true, checkSchemaVersion},
	{"Migrations complete", true, checkMigrationsComplete},
	{"Storage writable", true, checkWritable},
	{"Settings record", true, checkSettings},
	{"Event integrity", true, checkEvents},
	{"Backups present", false, checkBackupsPresent},
	{"Clock/timezone", false, func(*cli.Context) error { return checkClockTimezone(time.Now()) }},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true

	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Storage reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Storage reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		var w *warning
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.As(err, &w):
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %s\n", w.msg)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Store.GetAllEvents(); err != nil {
		return fmt.Errorf("failed to query storage: %w", err)
	}
	return nil
}

func versions(ctx *cli.Context) (current, latest int, ok bool, err error) {
	store, isSQL := ctx.Store.(migratable)
	if !isSQL {
		return 0, 0, false, nil
	}
	runner, err := store.MigrationRunner()
	if err != nil {
		return 0, 0, true, err
	}
	if current, err = runner.GetCurrentVersion(); err != nil {
		return 0, 0, true, fmt.Errorf("failed to get current schema version: %w", err)
	}
	if latest, err = runner.GetLatestVersion(); err != nil {
		return 0, 0, true, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, true, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, ok, err := versions(ctx)
	if err != nil || !ok {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, ok, err := versions(ctx)
	if err != nil || !ok {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'daypilot migrate')", current, latest)
	}
	return nil
}

func checkWritable(ctx *cli.Context) error {
	if !storage.IsAvailable(ctx.Store) {
		return fmt.Errorf("storage rejected a test write; settings and events will not persist")
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	raw, err := ctx.Store.Get(constants.SettingsStorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read settings record: %w", err)
	}
	if _, warnings := models.MergeSettings(raw); len(warnings) > 0 {
		return warn("settings record has %d ignored value(s): %v", len(warnings), warnings)
	}
	return nil
}

func checkEvents(ctx *cli.Context) error {
	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}

	seen := make(map[string]bool, len(events))
	invalid := 0
	for _, e := range events {
		if seen[e.ID] {
			return fmt.Errorf("duplicate event ID found: %s", e.ID)
		}
		seen[e.ID] = true
		if err := e.Validate(); err != nil {
			invalid++
		}
	}
	if invalid > 0 {
		return warn("%d of %d events have invalid fields and may not display", invalid, len(events))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	path, ok := ctx.SQLitePath()
	if !ok {
		return nil
	}
	backups, err := backup.NewManager(path).List()
	if err != nil {
		return warn("failed to list backups: %v", err)
	}
	if len(backups) == 0 {
		return warn("no backups found - consider creating one with 'daypilot backup create'")
	}
	return nil
}

func checkClockTimezone(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if now.Location() == nil {
		return fmt.Errorf("no local timezone configured")
	}
	return nil
}
