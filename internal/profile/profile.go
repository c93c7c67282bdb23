// Package profile reads and updates per-user settings.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/studylit/internal/daytime"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

var (
	ErrRolloverHour = errors.New("rollover hour must be between 0 and 23")
	ErrExamDate     = errors.New("exam date must be YYYY-MM-DD")
)

type Store interface {
	GetProfile(ctx context.Context, userID string) (models.Profile, error)
	SaveProfile(ctx context.Context, p models.Profile) error
}

// Update carries the fields to change; nil leaves a field as it is. An
// empty ExamDate clears it. ClearRolloverHour resets the hour to the default.
type Update struct {
	Username          *string `json:"username,omitempty"`
	ExamDate          *string `json:"exam_date,omitempty"`
	RolloverHour      *int    `json:"rollover_hour,omitempty"`
	ClearRolloverHour bool    `json:"clear_rollover_hour,omitempty"`
	AvatarPath        *string `json:"avatar_path,omitempty"`
}

type Service struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Get returns the stored profile, or an empty one for a user who never
// saved settings.
func (s *Service) Get(ctx context.Context, userID string) (models.Profile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Profile{UserID: userID}, nil
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	return p, nil
}

// RolloverHour returns the user's effective rollover hour: the default when
// unset, and the default with a warning when the stored value is invalid.
func (s *Service) RolloverHour(ctx context.Context, userID string) (int, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return EffectiveRolloverHour(p), nil
}

// EffectiveRolloverHour normalizes p.RolloverHour.
func EffectiveRolloverHour(p models.Profile) int {
	hour, clamped := daytime.NormalizeRolloverHour(p.RolloverHour)
	if clamped {
		logger.Warn("Stored rollover hour out of range, using default", "user", p.UserID, "stored", *p.RolloverHour, "default", hour)
	}
	return hour
}

func (s *Service) Save(ctx context.Context, userID string, u Update) (models.Profile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}

	if u.Username != nil {
		p.Username = strings.TrimSpace(*u.Username)
	}
	if u.ExamDate != nil {
		date := strings.TrimSpace(*u.ExamDate)
		if date != "" && !daytime.ValidateDate(date) {
			return models.Profile{}, ErrExamDate
		}
		p.ExamDate = date
	}
	if u.ClearRolloverHour {
		p.RolloverHour = nil
	} else if u.RolloverHour != nil {
		if !daytime.ValidRolloverHour(*u.RolloverHour) {
			return models.Profile{}, ErrRolloverHour
		}
		h := *u.RolloverHour
		p.RolloverHour = &h
	}
	if u.AvatarPath != nil {
		p.AvatarPath = strings.TrimSpace(*u.AvatarPath)
	}

	p.UserID = userID
	p.UpdatedAt = s.now()
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return models.Profile{}, fmt.Errorf("failed to save profile: %w", err)
	}
	return p, nil
}

// ExamCountdown returns the whole days from today to the exam date, never
// negative, or nil when no exam date is set.
func ExamCountdown(examDate, today string) *int {
	if examDate == "" {
		return nil
	}
	days, err := daytime.DaysBetween(today, examDate)
	if err != nil {
		logger.Warn("Ignoring invalid exam date", "exam_date", examDate, "error", err)
		return nil
	}
	if days < 0 {
		days = 0
	}
	return &days
}
