// Package todo owns the daily to-do list: recurring templates, the per-day
// progress rows derived from them, and the permanent completion history.
//
// Every operation takes the user id and rollover hour explicitly. Writes are
// keyed on natural unique keys so concurrent callers (several tabs, the CLI
// and the API at once) converge instead of duplicating rows.
package todo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/studylit/internal/daytime"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

var (
	// ErrStaleEntry is returned when toggling an entry from a closed day.
	// Such entries are waiting for rollover and can no longer change.
	ErrStaleEntry = errors.New("entry belongs to a previous day")
	ErrEmptyTitle = errors.New("title cannot be empty")
	ErrRepeatType = errors.New("repeat type must be weekday or weekend")
)

// Store is the subset of storage.Provider the to-do service needs.
type Store interface {
	AddTemplate(ctx context.Context, t models.Template) error
	GetTemplate(ctx context.Context, userID, id string) (models.Template, error)
	ListTemplates(ctx context.Context, userID string, filter storage.TemplateFilter) ([]models.Template, error)
	UpdateTemplate(ctx context.Context, t models.Template) error

	ListProgress(ctx context.Context, userID, date string) ([]models.ProgressEntry, error)
	ListProgressBefore(ctx context.Context, userID, date string) ([]models.ProgressEntry, error)
	GetProgress(ctx context.Context, userID, id string) (models.ProgressEntry, error)
	InsertProgress(ctx context.Context, entries []models.ProgressEntry) error
	UpdateProgressDone(ctx context.Context, e models.ProgressEntry) error
	DeleteProgress(ctx context.Context, userID string, ids []string) error
	DeleteProgressForTemplates(ctx context.Context, userID, date string, templateIDs []string) error

	UpsertHistory(ctx context.Context, records []models.HistoryRecord) error
	DeleteHistory(ctx context.Context, userID, templateID, date string) error
	ListHistory(ctx context.Context, userID, from, to string) ([]models.HistoryRecord, error)
}

type Service struct {
	store Store
	now   func() time.Time
	newID func() string
}

type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// day resolves the effective date. An out-of-range hour is replaced by the
// default rather than failing the request.
func (s *Service) day(rolloverHour int) daytime.Day {
	hour, clamped := daytime.NormalizeRolloverHour(&rolloverHour)
	if clamped {
		logger.Warn("Rollover hour out of range, using default", "hour", rolloverHour, "default", hour)
	}
	return daytime.Resolve(hour, s.now())
}

// Today is the page-load sequence: roll stale rows into history, then
// reconcile today's list. A rollover failure is logged and skipped; it is
// retried on the next call.
func (s *Service) Today(ctx context.Context, userID string, rolloverHour int) ([]models.ProgressEntry, error) {
	if _, err := s.RolloverProgress(ctx, userID, rolloverHour); err != nil {
		logger.Warn("Rollover skipped", "user", userID, "error", err)
	}
	return s.ReconcileToday(ctx, userID, rolloverHour)
}

// Toggle flips one entry and returns the refreshed list for today.
func (s *Service) Toggle(ctx context.Context, userID, entryID string, rolloverHour int) ([]models.ProgressEntry, error) {
	if _, err := s.ToggleTodo(ctx, userID, entryID, rolloverHour); err != nil {
		return nil, err
	}
	return s.ReconcileToday(ctx, userID, rolloverHour)
}
