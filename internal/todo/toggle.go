package todo

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

// ToggleTodo flips one of today's entries and mirrors the result into
// history: completion upserts today's record, un-completion deletes it.
// If the history write fails the entry is put back as it was.
func (s *Service) ToggleTodo(ctx context.Context, userID, entryID string, rolloverHour int) (models.ProgressEntry, error) {
	day := s.day(rolloverHour)

	entry, err := s.store.GetProgress(ctx, userID, entryID)
	if err != nil {
		return models.ProgressEntry{}, fmt.Errorf("failed to load entry %s: %w", entryID, err)
	}
	if entry.EffectiveDate != day.Date {
		return entry, fmt.Errorf("%w: %s is not %s", ErrStaleEntry, entry.EffectiveDate, day.Date)
	}

	tmpl, err := s.store.GetTemplate(ctx, userID, entry.TemplateID)
	if errors.Is(err, storage.ErrNotFound) {
		logger.Warn("Toggle ignored, template missing", "user", userID, "entry", entry.ID, "template", entry.TemplateID)
		return entry, nil
	}
	if err != nil {
		return entry, fmt.Errorf("failed to load template: %w", err)
	}

	previous := entry
	now := s.now()
	entry.IsDone = !entry.IsDone
	entry.UpdatedAt = now
	if entry.IsDone {
		entry.DoneAt = &now
	} else {
		entry.DoneAt = nil
	}

	if err := s.store.UpdateProgressDone(ctx, entry); err != nil {
		return previous, fmt.Errorf("failed to update entry: %w", err)
	}

	if entry.IsDone {
		err = s.store.UpsertHistory(ctx, []models.HistoryRecord{{
			UserID:     userID,
			TemplateID: entry.TemplateID,
			Date:       day.Date,
			Title:      tmpl.Title,
			IsDone:     true,
			UpdatedAt:  now,
		}})
	} else {
		err = s.store.DeleteHistory(ctx, userID, entry.TemplateID, day.Date)
	}
	if err != nil {
		if rbErr := s.store.UpdateProgressDone(ctx, previous); rbErr != nil {
			logger.Error("Failed to restore entry after history error", "entry", entry.ID, "error", rbErr)
		}
		return previous, fmt.Errorf("failed to record history: %w", err)
	}

	entry.Title = tmpl.Title
	return entry, nil
}
