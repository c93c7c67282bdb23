package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/studylit/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing SQLite database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if !ctx.IsSQLite() {
			return errors.New("--force only supports SQLite storage; drop the PostgreSQL schema manually")
		}
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			// Database exists, close it first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Fprintf(cli.Out, "Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(cli.Out, "Initialized studylit storage at: %s\n", ctx.Store.GetConfigPath())
	fmt.Fprintf(cli.Out, "User ID: %s\n", ctx.UserID)
	return nil
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return errors.New("storage backend does not support migrations")
	}

	count, err := m.Migrate(func(msg string) {
		fmt.Fprintln(cli.Out, msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Fprintln(cli.Out, "No migrations to apply. Database is up to date.")
	} else {
		fmt.Fprintf(cli.Out, "\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
