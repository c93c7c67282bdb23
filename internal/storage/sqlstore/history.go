package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/studylit/internal/models"
)

type historyRow struct {
	UserID     string `db:"user_id"`
	TemplateID string `db:"template_id"`
	Date       string `db:"date"`
	Title      string `db:"title"`
	IsDone     bool   `db:"is_done"`
	UpdatedAt  string `db:"updated_at"`
}

// UpsertHistory writes records, replacing title, is_done and updated_at of
// any existing row with the same (user, template, date).
func (s *Store) UpsertHistory(ctx context.Context, records []models.HistoryRecord) error {
	if len(records) == 0 {
		return nil
	}
	q := s.sb.Insert("todo_records").
		Columns("user_id", "template_id", "date", "title", "is_done", "updated_at").
		Suffix("ON CONFLICT (user_id, template_id, date) DO UPDATE SET " +
			"title = excluded.title, is_done = excluded.is_done, updated_at = excluded.updated_at")
	for _, r := range records {
		q = q.Values(r.UserID, r.TemplateID, r.Date, r.Title, r.IsDone, formatTime(r.UpdatedAt))
	}
	_, err := s.exec(ctx, q)
	return err
}

func (s *Store) DeleteHistory(ctx context.Context, userID, templateID, date string) error {
	_, err := s.exec(ctx, s.sb.Delete("todo_records").
		Where(sq.Eq{"user_id": userID, "template_id": templateID, "date": date}))
	return err
}

// ListHistory returns records in [from, to]; empty bounds are open.
func (s *Store) ListHistory(ctx context.Context, userID, from, to string) ([]models.HistoryRecord, error) {
	q := s.sb.Select("user_id", "template_id", "date", "title", "is_done", "updated_at").
		From("todo_records").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("date ASC", "title ASC")
	if from != "" {
		q = q.Where(sq.GtOrEq{"date": from})
	}
	if to != "" {
		q = q.Where(sq.LtOrEq{"date": to})
	}

	var rows []historyRow
	if err := s.selectRows(ctx, &rows, q); err != nil {
		return nil, err
	}
	out := make([]models.HistoryRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.HistoryRecord{
			UserID:     r.UserID,
			TemplateID: r.TemplateID,
			Date:       r.Date,
			Title:      r.Title,
			IsDone:     r.IsDone,
			UpdatedAt:  parseTime(r.UpdatedAt),
		})
	}
	return out, nil
}

func (s *Store) CountCompletedHistory(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.getRow(ctx, &n, s.sb.Select("COUNT(*)").
		From("todo_records").
		Where(sq.Eq{"user_id": userID, "is_done": true}))
	return n, err
}
