package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/studylit/internal/models"
)

// ErrNotFound is returned by single-row lookups and targeted updates when
// no row matches.
var ErrNotFound = errors.New("not found")

// TemplateFilter narrows ListTemplates. Zero values mean "any".
type TemplateFilter struct {
	RepeatType models.DayType
	ActiveOnly bool
}

// NoteFilter narrows ListNotes.
type NoteFilter struct {
	Kind models.NoteKind
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Templates
	AddTemplate(ctx context.Context, t models.Template) error
	GetTemplate(ctx context.Context, userID, id string) (models.Template, error)
	ListTemplates(ctx context.Context, userID string, filter TemplateFilter) ([]models.Template, error)
	UpdateTemplate(ctx context.Context, t models.Template) error

	// Progress
	ListProgress(ctx context.Context, userID, date string) ([]models.ProgressEntry, error)
	ListProgressBefore(ctx context.Context, userID, date string) ([]models.ProgressEntry, error)
	GetProgress(ctx context.Context, userID, id string) (models.ProgressEntry, error)
	InsertProgress(ctx context.Context, entries []models.ProgressEntry) error
	UpdateProgressDone(ctx context.Context, e models.ProgressEntry) error
	DeleteProgress(ctx context.Context, userID string, ids []string) error
	DeleteProgressForTemplates(ctx context.Context, userID, date string, templateIDs []string) error

	// History
	UpsertHistory(ctx context.Context, records []models.HistoryRecord) error
	DeleteHistory(ctx context.Context, userID, templateID, date string) error
	ListHistory(ctx context.Context, userID, from, to string) ([]models.HistoryRecord, error)
	CountCompletedHistory(ctx context.Context, userID string) (int, error)

	// Profile
	GetProfile(ctx context.Context, userID string) (models.Profile, error)
	SaveProfile(ctx context.Context, p models.Profile) error

	// Study sessions
	AddSession(ctx context.Context, s models.StudySession) error
	ListSessions(ctx context.Context, userID, from, to string) ([]models.StudySession, error)
	DeleteSession(ctx context.Context, userID, id string) error

	// Plans
	AddPlan(ctx context.Context, p models.Plan) error
	GetPlan(ctx context.Context, userID, id string) (models.Plan, error)
	UpdatePlan(ctx context.Context, p models.Plan) error
	DeletePlan(ctx context.Context, userID, id string) error
	ListPlans(ctx context.Context, userID, from, to string) ([]models.Plan, error)

	// Notes
	AddNote(ctx context.Context, n models.Note) error
	GetNote(ctx context.Context, userID, id string) (models.Note, error)
	UpdateNote(ctx context.Context, n models.Note) error
	DeleteNote(ctx context.Context, userID, id string) error
	ListNotes(ctx context.Context, userID string, filter NoteFilter) ([]models.Note, error)

	// Utils
	GetConfigPath() string
}
