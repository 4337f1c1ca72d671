package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/cli/backups"
	"github.com/julianstephens/daypilot/internal/cli/calendar"
	"github.com/julianstephens/daypilot/internal/cli/settings"
	"github.com/julianstephens/daypilot/internal/cli/system"
	"github.com/julianstephens/daypilot/internal/cli/transfer"
	"github.com/julianstephens/daypilot/internal/config"
	"github.com/julianstephens/daypilot/internal/constants"
	apperrors "github.com/julianstephens/daypilot/internal/errors"
	"github.com/julianstephens/daypilot/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Path to config.yaml." type:"path" default:"${config_file}" env:"DAYPILOT_CONFIG"`
	DB      string `name:"db" help:"Storage target: SQLite path, .json file, :memory:, 'postgres' (keyring or DAYPILOT_DB_CONNECTION) or a PostgreSQL URL without a password. Overrides config." env:"DAYPILOT_DB"`
	Verbose bool   `name:"debug" help:"Enable debug logging."`

	Init    system.InitCmd    `cmd:"" help:"Initialize daypilot storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive calendar." default:"1"`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the local HTTP API."`

	Add      calendar.AddCmd      `cmd:"" help:"Add an event."`
	Edit     calendar.EditCmd     `cmd:"" help:"Edit an event."`
	Delete   calendar.DeleteCmd   `cmd:"" aliases:"rm" help:"Delete an event."`
	List     calendar.ListCmd     `cmd:"" aliases:"ls" help:"List all events by date."`
	Today    calendar.TodayCmd    `cmd:"" help:"Show today's events."`
	Day      calendar.DayCmd      `cmd:"" help:"Show the events of a day."`
	Month    calendar.MonthCmd    `cmd:"" help:"Show a month grid with event counts."`
	Validate calendar.ValidateCmd `cmd:"" help:"Check events for overlaps, duplicates and bad data."`

	Export transfer.ExportCmd `cmd:"" help:"Export events as iCalendar or JSON."`
	Import transfer.ImportCmd `cmd:"" help:"Import events from an iCalendar or JSON file."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability." default:"1"`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Settings settings.SettingsCmd `cmd:"" help:"View and change display settings."`
	Notify   system.NotifyCmd     `cmd:"" help:"Send reminders for upcoming events to the tray app."`
	Debug    system.DebugCmd      `cmd:"" help:"Debug commands for troubleshooting."`
}

// skipLoad lists commands that open storage themselves.
var skipLoad = map[string]bool{
	"init":   true,
	"doctor": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal calendar and event planner"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		if cfg == nil {
			apperrors.Fatal(fmt.Errorf("failed to load config: %w", err))
		}
		fmt.Fprintf(os.Stderr, "Warning: could not write default config: %v\n", err)
	}

	command := ""
	if ctx.Selected() != nil {
		command = ctx.Selected().Name
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Verbose || cfg.Debug,
		LogDir:    cfg.LogDir,
		ConfigDir: config.Dir(CLI.Config),
		Quiet:     command == "tui",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	target := cfg.Storage
	if CLI.DB != "" {
		target = CLI.DB
	}
	store, err := cli.OpenStore(target)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:      store,
		Config:     cfg,
		ConfigPath: CLI.Config,
	}

	if !skipLoad[command] {
		if err := store.Load(); err != nil {
			apperrors.Fatal(apperrors.WithHint(err, "Run 'daypilot init' to create storage, or 'daypilot doctor' to diagnose."))
		}
	}

	logger.Debug("Running command", "command", ctx.Command(), "storage", store.GetConfigPath())
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
