// Package sqlstore implements storage.Provider's data methods on top of
// database/sql for both supported backends. Queries are built with squirrel
// so the same code serves SQLite's "?" and PostgreSQL's "$n" placeholders.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/storage"
)

// Dialect captures what differs between backends at the query level.
type Dialect struct {
	Driver      string
	Placeholder sq.PlaceholderFormat
}

var (
	SQLite   = Dialect{Driver: "sqlite", Placeholder: sq.Question}
	Postgres = Dialect{Driver: "postgres", Placeholder: sq.Dollar}
)

type Store struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{
		db: sqlx.NewDb(db, dialect.Driver),
		sb: sq.StatementBuilder.PlaceholderFormat(dialect.Placeholder),
	}
}

// DB exposes the underlying handle for maintenance tasks (backups, doctor).
func (s *Store) DB() *sql.DB {
	return s.db.DB
}

func (s *Store) exec(ctx context.Context, b sq.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return s.db.ExecContext(ctx, query, args...)
}

func (s *Store) selectRows(ctx context.Context, dest any, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	return s.db.SelectContext(ctx, dest, query, args...)
}

func (s *Store) getRow(ctx context.Context, dest any, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	err = s.db.GetContext(ctx, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

// execOne runs an UPDATE or DELETE that must touch exactly one row.
func (s *Store) execOne(ctx context.Context, b sq.Sqlizer) error {
	res, err := s.exec(ctx, b)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(constants.TimestampFormat)
}

func parseTime(v string) time.Time {
	t, err := time.Parse(constants.TimestampFormat, v)
	if err != nil {
		// Rows written by hand or by an older build may use plain RFC 3339.
		t, _ = time.Parse(time.RFC3339Nano, v)
	}
	return t
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
