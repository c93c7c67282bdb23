package todo

import (
	"context"
	"fmt"

	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

// ReconcileToday makes today's progress rows match the active templates for
// today's day type and returns them, oldest update first.
func (s *Service) ReconcileToday(ctx context.Context, userID string, rolloverHour int) ([]models.ProgressEntry, error) {
	day := s.day(rolloverHour)

	templates, err := s.store.ListTemplates(ctx, userID, storage.TemplateFilter{
		RepeatType: day.Type,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	existing, err := s.store.ListProgress(ctx, userID, day.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's progress: %w", err)
	}

	active := make(map[string]struct{}, len(templates))
	for _, t := range templates {
		active[t.ID] = struct{}{}
	}
	present := make(map[string]struct{}, len(existing))
	var toDelete []string
	for _, e := range existing {
		present[e.TemplateID] = struct{}{}
		if _, ok := active[e.TemplateID]; !ok {
			toDelete = append(toDelete, e.TemplateID)
		}
	}

	now := s.now()
	var toAdd []models.ProgressEntry
	for _, t := range templates {
		if _, ok := present[t.ID]; ok {
			continue
		}
		toAdd = append(toAdd, models.ProgressEntry{
			ID:            s.newID(),
			UserID:        userID,
			TemplateID:    t.ID,
			EffectiveDate: day.Date,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	if len(toDelete) > 0 {
		if err := s.store.DeleteProgressForTemplates(ctx, userID, day.Date, toDelete); err != nil {
			return nil, fmt.Errorf("failed to remove outdated progress: %w", err)
		}
	}
	if len(toAdd) > 0 {
		if err := s.store.InsertProgress(ctx, toAdd); err != nil {
			return nil, fmt.Errorf("failed to add progress: %w", err)
		}
	}

	if len(toDelete) == 0 && len(toAdd) == 0 {
		return existing, nil
	}

	logger.Debug("Reconciled progress", "user", userID, "date", day.Date,
		"added", len(toAdd), "removed", len(toDelete))

	entries, err := s.store.ListProgress(ctx, userID, day.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to reload today's progress: %w", err)
	}
	return entries, nil
}
