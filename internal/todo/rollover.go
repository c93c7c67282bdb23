package todo

import (
	"context"
	"fmt"

	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/models"
)

// RolloverResult summarises one rollover pass.
type RolloverResult struct {
	Today    string `json:"today"`
	Archived int    `json:"archived"` // unfinished entries written to history
	Removed  int    `json:"removed"`  // stale progress rows deleted
}

// RolloverProgress moves every progress row dated before today out of the
// live table. Unfinished rows are upserted into history first; only if that
// succeeds are the stale rows deleted. Completed rows already reached history
// when they were toggled, so they are just dropped.
//
// Only the rows read here are deleted. A row written for an old date by a
// concurrent caller after the read survives until the next pass.
func (s *Service) RolloverProgress(ctx context.Context, userID string, rolloverHour int) (RolloverResult, error) {
	day := s.day(rolloverHour)
	result := RolloverResult{Today: day.Date}

	stale, err := s.store.ListProgressBefore(ctx, userID, day.Date)
	if err != nil {
		return result, fmt.Errorf("failed to load stale progress: %w", err)
	}
	if len(stale) == 0 {
		return result, nil
	}

	now := s.now()
	var records []models.HistoryRecord
	ids := make([]string, 0, len(stale))
	for _, e := range stale {
		ids = append(ids, e.ID)
		if e.IsDone {
			continue
		}
		records = append(records, models.HistoryRecord{
			UserID:     userID,
			TemplateID: e.TemplateID,
			Date:       e.EffectiveDate,
			Title:      e.Title,
			IsDone:     false,
			UpdatedAt:  now,
		})
	}

	if err := s.store.UpsertHistory(ctx, records); err != nil {
		return result, fmt.Errorf("failed to archive unfinished progress: %w", err)
	}
	result.Archived = len(records)

	if err := s.store.DeleteProgress(ctx, userID, ids); err != nil {
		return result, fmt.Errorf("failed to delete stale progress: %w", err)
	}
	result.Removed = len(ids)

	logger.Debug("Rolled over progress", "user", userID, "today", day.Date,
		"archived", result.Archived, "removed", result.Removed)
	return result, nil
}
