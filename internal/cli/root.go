package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/julianstephens/studylit/internal/backup"
	"github.com/julianstephens/studylit/internal/config"
	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/keyring"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/migration"
	"github.com/julianstephens/studylit/internal/notes"
	"github.com/julianstephens/studylit/internal/profile"
	"github.com/julianstephens/studylit/internal/storage"
	"github.com/julianstephens/studylit/internal/storage/postgres"
	"github.com/julianstephens/studylit/internal/storage/sqlite"
	"github.com/julianstephens/studylit/internal/study"
	"github.com/julianstephens/studylit/internal/todo"
)

// Out receives command output.
var Out io.Writer = os.Stdout

// KeyringDB is the config value that reads the connection string from the
// OS keyring.
const KeyringDB = "keyring"

type Context struct {
	Ctx        context.Context
	Store      storage.Provider
	Config     config.Config
	ConfigPath string
	UserID     string

	Todos    *todo.Service
	Study    *study.Service
	Notes    *notes.Service
	Profiles *profile.Service
}

// Migrator is implemented by both SQL backends.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	Runner() (*migration.Runner, error)
}

func NewContext(ctx context.Context, store storage.Provider, cfg config.Config, configPath, userID string) *Context {
	return &Context{
		Ctx:        ctx,
		Store:      store,
		Config:     cfg,
		ConfigPath: configPath,
		UserID:     userID,
		Todos:      todo.New(store),
		Study:      study.New(store),
		Notes:      notes.New(store),
		Profiles:   profile.New(store),
	}
}

// RolloverHour returns the current user's effective rollover hour.
func (c *Context) RolloverHour() (int, error) {
	return c.Profiles.RolloverHour(c.Ctx, c.UserID)
}

// IsSQLite reports whether the store is a local SQLite file.
func (c *Context) IsSQLite() bool {
	_, ok := c.Store.(*sqlite.Store)
	return ok
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// OpenStore picks the backend for db. STUDYLIT_DB_CONNECTION overrides db;
// "keyring" reads the connection string from the OS keyring. Connection
// strings typed into flags or config files must not carry a password.
func OpenStore(db string) (storage.Provider, error) {
	trusted := false
	if env := os.Getenv(constants.EnvDBConnection); env != "" {
		db = env
		trusted = true
	}

	if db == KeyringDB {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, errors.New("no connection string found in keyring. Use 'studylit keyring set' to store one")
			}
			return nil, err
		}
		db = connStr
		trusted = true
	}

	if postgres.IsConnString(db) {
		if !trusted {
			if valid, err := postgres.ValidateConnString(db); !valid {
				if errors.Is(err, postgres.ErrEmbeddedCredentials) {
					return nil, fmt.Errorf("%w. Use 'studylit keyring set', %s, or .pgpass instead", err, constants.EnvDBConnection)
				}
				return nil, err
			}
		}
		return postgres.New(db), nil
	}

	return sqlite.NewStore(config.ExpandPath(db)), nil
}

// Confirm asks a yes/no question. Tests and scripts pass yes=true.
func Confirm(title string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	return confirmFunc(title)
}

// ResolveEntry accepts either a 1-based position in today's list or an
// entry id.
func ResolveEntry(entries []string, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(entries) {
			return "", fmt.Errorf("no to-do #%d (today has %d)", n, len(entries))
		}
		return entries[n-1], nil
	}
	return ref, nil
}
