package sqlstore

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/studylit/internal/models"
)

type progressRow struct {
	ID            string         `db:"id"`
	UserID        string         `db:"user_id"`
	TemplateID    string         `db:"template_id"`
	EffectiveDate string         `db:"effective_date"`
	Title         string         `db:"title"`
	IsDone        bool           `db:"is_done"`
	DoneAt        sql.NullString `db:"done_at"`
	CreatedAt     string         `db:"created_at"`
	UpdatedAt     string         `db:"updated_at"`
}

func (r progressRow) model() models.ProgressEntry {
	e := models.ProgressEntry{
		ID:            r.ID,
		UserID:        r.UserID,
		TemplateID:    r.TemplateID,
		EffectiveDate: r.EffectiveDate,
		Title:         r.Title,
		IsDone:        r.IsDone,
		CreatedAt:     parseTime(r.CreatedAt),
		UpdatedAt:     parseTime(r.UpdatedAt),
	}
	if r.DoneAt.Valid {
		t := parseTime(r.DoneAt.String)
		e.DoneAt = &t
	}
	return e
}

// progressSelect joins the template title. A missing template yields an
// empty title rather than dropping the row.
func (s *Store) progressSelect() sq.SelectBuilder {
	return s.sb.Select(
		"p.id", "p.user_id", "p.template_id", "p.effective_date",
		"COALESCE(t.title, '') AS title",
		"p.is_done", "p.done_at", "p.created_at", "p.updated_at",
	).
		From("todo_progress p").
		LeftJoin("todo_templates t ON t.id = p.template_id AND t.user_id = p.user_id")
}

func (s *Store) listProgress(ctx context.Context, q sq.SelectBuilder) ([]models.ProgressEntry, error) {
	var rows []progressRow
	if err := s.selectRows(ctx, &rows, q.OrderBy("p.updated_at ASC", "p.id ASC")); err != nil {
		return nil, err
	}
	out := make([]models.ProgressEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

func (s *Store) ListProgress(ctx context.Context, userID, date string) ([]models.ProgressEntry, error) {
	return s.listProgress(ctx, s.progressSelect().
		Where(sq.Eq{"p.user_id": userID, "p.effective_date": date}))
}

// ListProgressBefore returns every entry dated strictly before date.
func (s *Store) ListProgressBefore(ctx context.Context, userID, date string) ([]models.ProgressEntry, error) {
	return s.listProgress(ctx, s.progressSelect().
		Where(sq.Eq{"p.user_id": userID}).
		Where(sq.Lt{"p.effective_date": date}))
}

func (s *Store) GetProgress(ctx context.Context, userID, id string) (models.ProgressEntry, error) {
	var row progressRow
	err := s.getRow(ctx, &row, s.progressSelect().
		Where(sq.Eq{"p.id": id, "p.user_id": userID}))
	if err != nil {
		return models.ProgressEntry{}, err
	}
	return row.model(), nil
}

// InsertProgress bulk-inserts entries. Rows that already exist for the same
// (user, template, date) are left untouched so completion is never reset.
func (s *Store) InsertProgress(ctx context.Context, entries []models.ProgressEntry) error {
	if len(entries) == 0 {
		return nil
	}
	q := s.sb.Insert("todo_progress").
		Columns("id", "user_id", "template_id", "effective_date", "is_done", "done_at", "created_at", "updated_at").
		Suffix("ON CONFLICT (user_id, template_id, effective_date) DO NOTHING")
	for _, e := range entries {
		var doneAt sql.NullString
		if e.DoneAt != nil {
			doneAt = nullString(formatTime(*e.DoneAt))
		}
		q = q.Values(e.ID, e.UserID, e.TemplateID, e.EffectiveDate, e.IsDone, doneAt,
			formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
	}
	_, err := s.exec(ctx, q)
	return err
}

func (s *Store) UpdateProgressDone(ctx context.Context, e models.ProgressEntry) error {
	var doneAt sql.NullString
	if e.DoneAt != nil {
		doneAt = nullString(formatTime(*e.DoneAt))
	}
	return s.execOne(ctx, s.sb.Update("todo_progress").
		Set("is_done", e.IsDone).
		Set("done_at", doneAt).
		Set("updated_at", formatTime(e.UpdatedAt)).
		Where(sq.Eq{"id": e.ID, "user_id": e.UserID}))
}

func (s *Store) DeleteProgress(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.exec(ctx, s.sb.Delete("todo_progress").
		Where(sq.Eq{"user_id": userID, "id": ids}))
	return err
}

func (s *Store) DeleteProgressForTemplates(ctx context.Context, userID, date string, templateIDs []string) error {
	if len(templateIDs) == 0 {
		return nil
	}
	_, err := s.exec(ctx, s.sb.Delete("todo_progress").
		Where(sq.Eq{"user_id": userID, "effective_date": date, "template_id": templateIDs}))
	return err
}
