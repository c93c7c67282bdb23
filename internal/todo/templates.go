package todo

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

func (s *Service) CreateTemplate(ctx context.Context, userID, title string, repeatType models.DayType) (models.Template, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Template{}, ErrEmptyTitle
	}
	if !repeatType.Valid() {
		return models.Template{}, ErrRepeatType
	}

	now := s.now()
	t := models.Template{
		ID:         s.newID(),
		UserID:     userID,
		Title:      title,
		RepeatType: repeatType,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.AddTemplate(ctx, t); err != nil {
		return models.Template{}, fmt.Errorf("failed to create template: %w", err)
	}
	return t, nil
}

// RenameTemplate changes the title. Existing history keeps the old title.
func (s *Service) RenameTemplate(ctx context.Context, userID, templateID, title string) (models.Template, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Template{}, ErrEmptyTitle
	}

	t, err := s.store.GetTemplate(ctx, userID, templateID)
	if err != nil {
		return models.Template{}, fmt.Errorf("failed to load template %s: %w", templateID, err)
	}
	t.Title = title
	t.UpdatedAt = s.now()
	if err := s.store.UpdateTemplate(ctx, t); err != nil {
		return models.Template{}, fmt.Errorf("failed to rename template: %w", err)
	}
	return t, nil
}

// DeactivateTemplate soft-deletes a template. Today's entry disappears on the
// next reconcile; history is kept.
func (s *Service) DeactivateTemplate(ctx context.Context, userID, templateID string, rolloverHour int) (models.Template, error) {
	t, err := s.store.GetTemplate(ctx, userID, templateID)
	if err != nil {
		return models.Template{}, fmt.Errorf("failed to load template %s: %w", templateID, err)
	}
	if !t.IsActive {
		return t, nil
	}

	t.IsActive = false
	t.DeactivatedAt = s.day(rolloverHour).Date
	t.UpdatedAt = s.now()
	if err := s.store.UpdateTemplate(ctx, t); err != nil {
		return models.Template{}, fmt.Errorf("failed to deactivate template: %w", err)
	}
	return t, nil
}

// ListTemplates lists templates of repeatType ("" for both), optionally
// including deactivated ones.
func (s *Service) ListTemplates(ctx context.Context, userID string, repeatType models.DayType, includeInactive bool) ([]models.Template, error) {
	if repeatType != "" && !repeatType.Valid() {
		return nil, ErrRepeatType
	}
	return s.store.ListTemplates(ctx, userID, storage.TemplateFilter{
		RepeatType: repeatType,
		ActiveOnly: !includeInactive,
	})
}

// OtherDayTemplates lists the active templates of the day type that is not
// today's, as a preview of the other list.
func (s *Service) OtherDayTemplates(ctx context.Context, userID string, rolloverHour int) ([]models.Template, error) {
	day := s.day(rolloverHour)
	return s.store.ListTemplates(ctx, userID, storage.TemplateFilter{
		RepeatType: day.Type.Opposite(),
		ActiveOnly: true,
	})
}

// History lists completion records with date in [from, to]; empty bounds
// are open.
func (s *Service) History(ctx context.Context, userID, from, to string) ([]models.HistoryRecord, error) {
	return s.store.ListHistory(ctx, userID, from, to)
}
