// Package study records study time and calendar plans and derives the
// summary figures shown on the home screen.
package study

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/studylit/internal/daytime"
	"github.com/julianstephens/studylit/internal/models"
)

var (
	ErrMinutes     = errors.New("minutes must be greater than zero")
	ErrDateRange   = errors.New("end date must not be before start date")
	ErrInvalidDate = errors.New("dates must be YYYY-MM-DD")
	ErrColor       = errors.New("unknown plan color")
	ErrTitle       = errors.New("title cannot be empty")
)

type Store interface {
	AddSession(ctx context.Context, s models.StudySession) error
	ListSessions(ctx context.Context, userID, from, to string) ([]models.StudySession, error)
	DeleteSession(ctx context.Context, userID, id string) error

	AddPlan(ctx context.Context, p models.Plan) error
	GetPlan(ctx context.Context, userID, id string) (models.Plan, error)
	UpdatePlan(ctx context.Context, p models.Plan) error
	DeletePlan(ctx context.Context, userID, id string) error
	ListPlans(ctx context.Context, userID, from, to string) ([]models.Plan, error)

	CountCompletedHistory(ctx context.Context, userID string) (int, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today(rolloverHour int) daytime.Day {
	hour, _ := daytime.NormalizeRolloverHour(&rolloverHour)
	return daytime.Resolve(hour, s.now())
}

// LogSession records minutes of study against today's effective date.
func (s *Service) LogSession(ctx context.Context, userID string, minutes, rolloverHour int) (models.StudySession, error) {
	if minutes <= 0 {
		return models.StudySession{}, ErrMinutes
	}
	sess := models.StudySession{
		ID:        uuid.New().String(),
		UserID:    userID,
		StudyDate: s.today(rolloverHour).Date,
		Minutes:   minutes,
		CreatedAt: s.now(),
	}
	if err := s.store.AddSession(ctx, sess); err != nil {
		return models.StudySession{}, fmt.Errorf("failed to log session: %w", err)
	}
	return sess, nil
}

func (s *Service) ListSessions(ctx context.Context, userID, from, to string) ([]models.StudySession, error) {
	if err := CheckRange(from, to); err != nil {
		return nil, err
	}
	return s.store.ListSessions(ctx, userID, from, to)
}

func (s *Service) DeleteSession(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteSession(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

// DailyTotals sums minutes per study date in [from, to].
func (s *Service) DailyTotals(ctx context.Context, userID, from, to string) (map[string]int, error) {
	sessions, err := s.ListSessions(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	totals := make(map[string]int)
	for _, sess := range sessions {
		totals[sess.StudyDate] += sess.Minutes
	}
	return totals, nil
}

// CheckRange validates optional YYYY-MM-DD bounds for list queries.
func CheckRange(from, to string) error {
	if from != "" && !daytime.ValidateDate(from) {
		return fmt.Errorf("%w: from %q", ErrInvalidDate, from)
	}
	if to != "" && !daytime.ValidateDate(to) {
		return fmt.Errorf("%w: to %q", ErrInvalidDate, to)
	}
	if from != "" && to != "" && to < from {
		return ErrDateRange
	}
	return nil
}
