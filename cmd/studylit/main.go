package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/cli/backups"
	"github.com/julianstephens/studylit/internal/cli/notebook"
	"github.com/julianstephens/studylit/internal/cli/plans"
	"github.com/julianstephens/studylit/internal/cli/sessions"
	"github.com/julianstephens/studylit/internal/cli/settings"
	"github.com/julianstephens/studylit/internal/cli/system"
	"github.com/julianstephens/studylit/internal/cli/todos"
	"github.com/julianstephens/studylit/internal/config"
	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/errors"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"~/.config/studylit/config.toml"`
	DB      string `help:"SQLite path or PostgreSQL connection string (overrides the config file). For PostgreSQL, credentials must NOT be embedded; use STUDYLIT_DB_CONNECTION, the OS keyring, or .pgpass." name:"db"`
	User    string `help:"User ID to act as (overrides the config file)."`
	Debug   bool   `help:"Mirror logs to stderr at debug level."`

	Init    system.InitCmd    `cmd:"" help:"Initialize studylit storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the HTTP API."`
	Keyring struct {
		Set          system.KeyringSetCmd          `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		SetJWTSecret system.KeyringSetJWTSecretCmd `cmd:"" name:"set-jwt-secret" help:"Store the API token signing secret in the OS keyring."`
		Delete       system.KeyringDeleteCmd       `cmd:"" help:"Delete a stored secret."`
		Status       system.KeyringStatusCmd       `cmd:"" help:"Show keyring availability."`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`

	Today    todos.TodayCmd    `cmd:"" help:"Show today's to-do list." default:"1"`
	Toggle   todos.ToggleCmd   `cmd:"" help:"Mark a to-do done or not done."`
	Rollover todos.RolloverCmd `cmd:"" help:"Move finished days into history."`
	Template struct {
		Add    todos.TemplateAddCmd    `cmd:"" help:"Add a repeating to-do."`
		List   todos.TemplateListCmd   `cmd:"" help:"List repeating to-dos."`
		Rename todos.TemplateRenameCmd `cmd:"" help:"Rename a repeating to-do."`
		Delete todos.TemplateDeleteCmd `cmd:"" help:"Stop repeating a to-do."`
	} `cmd:"" help:"Manage repeating to-dos."`
	History struct {
		List   todos.HistoryListCmd   `cmd:"" help:"Show completion history." default:"1"`
		Export todos.HistoryExportCmd `cmd:"" help:"Export completion history."`
	} `cmd:"" help:"Completion history."`
	Session struct {
		Log    sessions.SessionLogCmd    `cmd:"" help:"Log study minutes for today."`
		List   sessions.SessionListCmd   `cmd:"" help:"List study sessions."`
		Totals sessions.SessionTotalsCmd `cmd:"" help:"Show minutes per day."`
		Delete sessions.SessionDeleteCmd `cmd:"" help:"Delete a study session."`
	} `cmd:"" help:"Track study time."`
	Plan struct {
		Add    plans.PlanAddCmd    `cmd:"" help:"Add a calendar plan."`
		Edit   plans.PlanEditCmd   `cmd:"" help:"Edit a calendar plan."`
		Delete plans.PlanDeleteCmd `cmd:"" help:"Delete a calendar plan."`
		List   plans.PlanListCmd   `cmd:"" help:"List calendar plans."`
	} `cmd:"" help:"Manage calendar plans."`
	Note struct {
		Add    notebook.NoteAddCmd    `cmd:"" help:"Add a note."`
		List   notebook.NoteListCmd   `cmd:"" help:"List notes."`
		Pin    notebook.NotePinCmd    `cmd:"" help:"Pin a note."`
		Unpin  notebook.NoteUnpinCmd  `cmd:"" help:"Unpin a note."`
		Delete notebook.NoteDeleteCmd `cmd:"" help:"Delete a note."`
	} `cmd:"" help:"Manage notes."`
	Profile struct {
		Show settings.ProfileShowCmd `cmd:"" help:"Show profile settings." default:"1"`
		Set  settings.ProfileSetCmd  `cmd:"" help:"Update profile settings."`
	} `cmd:"" help:"Manage profile settings."`
	Stats sessions.StatsCmd `cmd:"" help:"Show the study summary."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Study tracker with daily to-dos that roll over at a fixed hour"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)
	command := kctx.Command()

	cfg, err := config.LoadOrCreate(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug || cfg.Debug,
		ConfigDir: filepath.Dir(config.ExpandPath(CLI.Config)),
		Stderr:    strings.HasPrefix(command, "serve"),
	}); err != nil {
		errors.Fatal(err)
	}

	db := cfg.DB
	if CLI.DB != "" {
		db = CLI.DB
	}
	userID := cfg.UserID
	if CLI.User != "" {
		userID = CLI.User
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Keyring commands must work before any database is reachable.
	var store storage.Provider
	if !strings.HasPrefix(command, "keyring") {
		store, err = cli.OpenStore(db)
		if err != nil {
			errors.Fatal(err)
		}
		defer store.Close()

		// init creates the database and doctor reports load failures itself
		if !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "doctor") {
			if err := store.Load(); err != nil {
				errors.Fatal(err)
			}
		}
	}

	appCtx := cli.NewContext(ctx, store, cfg, CLI.Config, userID)
	if err := kctx.Run(appCtx); err != nil {
		stop()
		errors.Fatal(err)
	}
}
