package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/quenchapp/quench/internal/cli"
	"github.com/quenchapp/quench/internal/constants"
	"github.com/quenchapp/quench/internal/errors"
	"github.com/quenchapp/quench/internal/hydration"
	"github.com/quenchapp/quench/internal/logger"
	"github.com/quenchapp/quench/internal/schedule"
	"github.com/quenchapp/quench/internal/storage"
	"github.com/quenchapp/quench/internal/trigger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path." type:"path" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize quench storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Status   cli.StatusCmd   `cmd:"" help:"Show today's hydration progress."`
	Schedule cli.ScheduleCmd `cmd:"" help:"Show or change the reminder schedule."`
	Drink    cli.DrinkCmd    `cmd:"" help:"Log a drink."`
	Undo     cli.UndoCmd     `cmd:"" help:"Remove a logged drink."`
	Clear    cli.ClearCmd    `cmd:"" help:"Clear today's hydration record."`
	Day      cli.DayCmd      `cmd:"" help:"Show the hydration record for a day."`
	Daemon   cli.DaemonCmd   `cmd:"" help:"Run the reminder daemon."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks."`
	Fact     cli.FactCmd     `cmd:"" help:"Print a hydration fact."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Water reminder and hydration tracker"),
		kong.UsageOnError(),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		errors.Fatal(err)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	triggers, err := trigger.NewScheduler(nil)
	if err != nil {
		errors.Fatal(err)
	}

	tracker := hydration.NewTracker(store)
	appCtx := &cli.Context{
		Store:    store,
		Schedule: schedule.New(store, triggers, tracker),
		Tracker:  tracker,
	}

	errors.Fatal(ctx.Run(appCtx))
}
