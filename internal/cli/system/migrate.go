package system

import (
	"fmt"

	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/migration"
)

// migratable is implemented by the SQL-backed stores.
type migratable interface {
	MigrationRunner() (*migration.Runner, error)
}

type MigrateCmd struct {
	Status bool `help:"List migrations and whether each has been applied."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	store, ok := ctx.Store.(migratable)
	if !ok {
		return fmt.Errorf("migrate only supports SQLite and PostgreSQL storage")
	}

	runner, err := store.MigrationRunner()
	if err != nil {
		return err
	}

	if c.Status {
		statuses, err := runner.Status()
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		for _, s := range statuses {
			mark := " "
			if s.Applied {
				mark = "✓"
			}
			ctx.Printf("  [%s] %03d %s\n", mark, s.Version, s.Name)
		}
		return nil
	}

	count, err := runner.ApplyMigrations(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}
