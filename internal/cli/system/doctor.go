package system

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/studylit/internal/backup"
	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/daytime"
	"github.com/julianstephens/studylit/internal/profile"
	"github.com/julianstephens/studylit/internal/storage"
	"github.com/julianstephens/studylit/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(ctx *cli.Context) error
	// needsDB checks are skipped when the database is unreachable.
	needsDB bool
	// warnOnly checks never fail the run.
	warnOnly bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Data validation", run: checkValidation, needsDB: true},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Fprintln(cli.Out, "Running diagnostics...")
	fmt.Fprintln(cli.Out)

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Fprintf(cli.Out, "❌ Database reachable: FAIL\n")
		fmt.Fprintf(cli.Out, "   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Fprintf(cli.Out, "✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Fprintf(cli.Out, "⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Fprintf(cli.Out, "✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Fprintf(cli.Out, "⚠ %s: WARNING\n", c.name)
			fmt.Fprintf(cli.Out, "   %v\n", err)
		default:
			fmt.Fprintf(cli.Out, "❌ %s: FAIL\n", c.name)
			fmt.Fprintf(cli.Out, "   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Fprintln(cli.Out)
	if hasError {
		fmt.Fprintln(cli.Out, "Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}

	fmt.Fprintln(cli.Out, "All diagnostics passed!")
	return nil
}

type dbHolder interface {
	GetDB() *sql.DB
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	h, ok := ctx.Store.(dbHolder)
	if !ok {
		return nil
	}
	db := h.GetDB()
	if db == nil {
		return errors.New("database connection is nil")
	}
	var result int
	if err := db.QueryRowContext(ctx.Ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func versions(ctx *cli.Context) (int, int, error) {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return 0, 0, errors.New("storage backend does not track schema versions")
	}
	runner, err := m.Runner()
	if err != nil {
		return 0, 0, err
	}
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := versions(ctx)
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := versions(ctx)
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'studylit migrate')", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return errors.New("file backups only cover SQLite storage; back up PostgreSQL with pg_dump")
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'studylit backup create'")
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	snap, err := loadSnapshot(ctx)
	if err != nil {
		return err
	}
	result := validation.New().Validate(snap)
	if result.HasConflicts() {
		return errors.New(result.FormatReport())
	}
	return nil
}

// loadSnapshot reads everything the validator looks at for the current user.
func loadSnapshot(ctx *cli.Context) (validation.Snapshot, error) {
	c, user := ctx.Ctx, ctx.UserID

	p, err := ctx.Profiles.Get(c, user)
	if err != nil {
		return validation.Snapshot{}, err
	}
	snap := validation.Snapshot{
		Today:   daytime.Resolve(profile.EffectiveRolloverHour(p), time.Now()),
		Profile: p,
	}

	if snap.Templates, err = ctx.Store.ListTemplates(c, user, storage.TemplateFilter{}); err != nil {
		return snap, fmt.Errorf("failed to list templates: %w", err)
	}
	stale, err := ctx.Store.ListProgressBefore(c, user, snap.Today.Date)
	if err != nil {
		return snap, fmt.Errorf("failed to list progress: %w", err)
	}
	today, err := ctx.Store.ListProgress(c, user, snap.Today.Date)
	if err != nil {
		return snap, fmt.Errorf("failed to list progress: %w", err)
	}
	snap.Progress = append(stale, today...)
	if snap.Plans, err = ctx.Store.ListPlans(c, user, "", ""); err != nil {
		return snap, fmt.Errorf("failed to list plans: %w", err)
	}
	if snap.Notes, err = ctx.Store.ListNotes(c, user, storage.NoteFilter{}); err != nil {
		return snap, fmt.Errorf("failed to list notes: %w", err)
	}
	return snap, nil
}

func checkClockTimezone(*cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, offset := now.In(daytime.ReferenceLocation).Zone(); offset != constants.ReferenceUTCOffsetHours*60*60 {
		return fmt.Errorf("reference zone offset is %ds, expected UTC+%d", offset, constants.ReferenceUTCOffsetHours)
	}
	return nil
}
