package study

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/studylit/internal/models"
)

// PlanInput holds the editable plan fields.
type PlanInput struct {
	Title     string           `json:"title"`
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Color     models.PlanColor `json:"color"`
}

func (in *PlanInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return ErrTitle
	}
	if in.StartDate == "" || in.EndDate == "" {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidDate)
	}
	if err := CheckRange(in.StartDate, in.EndDate); err != nil {
		return err
	}
	if in.Color == "" {
		in.Color = models.PlanColorPurple
	}
	if !ValidColor(in.Color) {
		return fmt.Errorf("%w: %s", ErrColor, in.Color)
	}
	return nil
}

// ValidColor reports whether c is one of models.PlanColors.
func ValidColor(c models.PlanColor) bool {
	for _, known := range models.PlanColors {
		if c == known {
			return true
		}
	}
	return false
}

func (s *Service) CreatePlan(ctx context.Context, userID string, in PlanInput) (models.Plan, error) {
	if err := in.normalize(); err != nil {
		return models.Plan{}, err
	}
	now := s.now()
	p := models.Plan{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     in.Title,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Color:     in.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.AddPlan(ctx, p); err != nil {
		return models.Plan{}, fmt.Errorf("failed to create plan: %w", err)
	}
	return p, nil
}

// UpdatePlan replaces the editable fields of a plan the user owns.
func (s *Service) UpdatePlan(ctx context.Context, userID, id string, in PlanInput) (models.Plan, error) {
	if err := in.normalize(); err != nil {
		return models.Plan{}, err
	}
	p, err := s.store.GetPlan(ctx, userID, id)
	if err != nil {
		return models.Plan{}, fmt.Errorf("failed to load plan %s: %w", id, err)
	}
	p.Title = in.Title
	p.StartDate = in.StartDate
	p.EndDate = in.EndDate
	p.Color = in.Color
	p.UpdatedAt = s.now()
	if err := s.store.UpdatePlan(ctx, p); err != nil {
		return models.Plan{}, fmt.Errorf("failed to update plan: %w", err)
	}
	return p, nil
}

func (s *Service) DeletePlan(ctx context.Context, userID, id string) error {
	if err := s.store.DeletePlan(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete plan %s: %w", id, err)
	}
	return nil
}

// ListPlans returns plans overlapping [from, to].
func (s *Service) ListPlans(ctx context.Context, userID, from, to string) ([]models.Plan, error) {
	if err := CheckRange(from, to); err != nil {
		return nil, err
	}
	return s.store.ListPlans(ctx, userID, from, to)
}
