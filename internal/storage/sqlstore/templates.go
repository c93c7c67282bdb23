package sqlstore

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

var templateColumns = []string{
	"id", "user_id", "title", "repeat_type", "is_active", "created_at", "updated_at", "deactivated_at",
}

type templateRow struct {
	ID            string         `db:"id"`
	UserID        string         `db:"user_id"`
	Title         string         `db:"title"`
	RepeatType    string         `db:"repeat_type"`
	IsActive      bool           `db:"is_active"`
	CreatedAt     string         `db:"created_at"`
	UpdatedAt     string         `db:"updated_at"`
	DeactivatedAt sql.NullString `db:"deactivated_at"`
}

func (r templateRow) model() models.Template {
	return models.Template{
		ID:            r.ID,
		UserID:        r.UserID,
		Title:         r.Title,
		RepeatType:    models.DayType(r.RepeatType),
		IsActive:      r.IsActive,
		CreatedAt:     parseTime(r.CreatedAt),
		UpdatedAt:     parseTime(r.UpdatedAt),
		DeactivatedAt: r.DeactivatedAt.String,
	}
}

func (s *Store) AddTemplate(ctx context.Context, t models.Template) error {
	_, err := s.exec(ctx, s.sb.Insert("todo_templates").
		Columns(templateColumns...).
		Values(t.ID, t.UserID, t.Title, string(t.RepeatType), t.IsActive,
			formatTime(t.CreatedAt), formatTime(t.UpdatedAt), nullString(t.DeactivatedAt)))
	return err
}

func (s *Store) GetTemplate(ctx context.Context, userID, id string) (models.Template, error) {
	var row templateRow
	err := s.getRow(ctx, &row, s.sb.Select(templateColumns...).
		From("todo_templates").
		Where(sq.Eq{"id": id, "user_id": userID}))
	if err != nil {
		return models.Template{}, err
	}
	return row.model(), nil
}

func (s *Store) ListTemplates(ctx context.Context, userID string, filter storage.TemplateFilter) ([]models.Template, error) {
	q := s.sb.Select(templateColumns...).
		From("todo_templates").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at ASC", "id ASC")
	if filter.RepeatType != "" {
		q = q.Where(sq.Eq{"repeat_type": string(filter.RepeatType)})
	}
	if filter.ActiveOnly {
		q = q.Where(sq.Eq{"is_active": true})
	}

	var rows []templateRow
	if err := s.selectRows(ctx, &rows, q); err != nil {
		return nil, err
	}
	out := make([]models.Template, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

func (s *Store) UpdateTemplate(ctx context.Context, t models.Template) error {
	return s.execOne(ctx, s.sb.Update("todo_templates").
		Set("title", t.Title).
		Set("repeat_type", string(t.RepeatType)).
		Set("is_active", t.IsActive).
		Set("updated_at", formatTime(t.UpdatedAt)).
		Set("deactivated_at", nullString(t.DeactivatedAt)).
		Where(sq.Eq{"id": t.ID, "user_id": t.UserID}))
}
