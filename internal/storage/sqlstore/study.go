package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/studylit/internal/models"
)

type sessionRow struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	StudyDate string `db:"study_date"`
	Minutes   int    `db:"minutes"`
	CreatedAt string `db:"created_at"`
}

func (s *Store) AddSession(ctx context.Context, sess models.StudySession) error {
	_, err := s.exec(ctx, s.sb.Insert("study_sessions").
		Columns("id", "user_id", "study_date", "minutes", "created_at").
		Values(sess.ID, sess.UserID, sess.StudyDate, sess.Minutes, formatTime(sess.CreatedAt)))
	return err
}

// ListSessions returns sessions dated in [from, to]; empty bounds are open.
func (s *Store) ListSessions(ctx context.Context, userID, from, to string) ([]models.StudySession, error) {
	q := s.sb.Select("id", "user_id", "study_date", "minutes", "created_at").
		From("study_sessions").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("study_date ASC", "created_at ASC", "id ASC")
	if from != "" {
		q = q.Where(sq.GtOrEq{"study_date": from})
	}
	if to != "" {
		q = q.Where(sq.LtOrEq{"study_date": to})
	}

	var rows []sessionRow
	if err := s.selectRows(ctx, &rows, q); err != nil {
		return nil, err
	}
	out := make([]models.StudySession, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.StudySession{
			ID:        r.ID,
			UserID:    r.UserID,
			StudyDate: r.StudyDate,
			Minutes:   r.Minutes,
			CreatedAt: parseTime(r.CreatedAt),
		})
	}
	return out, nil
}

func (s *Store) DeleteSession(ctx context.Context, userID, id string) error {
	return s.execOne(ctx, s.sb.Delete("study_sessions").
		Where(sq.Eq{"id": id, "user_id": userID}))
}

var planColumns = []string{"id", "user_id", "title", "start_date", "end_date", "color", "created_at", "updated_at"}

type planRow struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	Title     string `db:"title"`
	StartDate string `db:"start_date"`
	EndDate   string `db:"end_date"`
	Color     string `db:"color"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

func (r planRow) model() models.Plan {
	return models.Plan{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Color:     models.PlanColor(r.Color),
		CreatedAt: parseTime(r.CreatedAt),
		UpdatedAt: parseTime(r.UpdatedAt),
	}
}

func (s *Store) AddPlan(ctx context.Context, p models.Plan) error {
	_, err := s.exec(ctx, s.sb.Insert("plans").
		Columns(planColumns...).
		Values(p.ID, p.UserID, p.Title, p.StartDate, p.EndDate, string(p.Color),
			formatTime(p.CreatedAt), formatTime(p.UpdatedAt)))
	return err
}

func (s *Store) GetPlan(ctx context.Context, userID, id string) (models.Plan, error) {
	var row planRow
	err := s.getRow(ctx, &row, s.sb.Select(planColumns...).
		From("plans").
		Where(sq.Eq{"id": id, "user_id": userID}))
	if err != nil {
		return models.Plan{}, err
	}
	return row.model(), nil
}

func (s *Store) UpdatePlan(ctx context.Context, p models.Plan) error {
	return s.execOne(ctx, s.sb.Update("plans").
		Set("title", p.Title).
		Set("start_date", p.StartDate).
		Set("end_date", p.EndDate).
		Set("color", string(p.Color)).
		Set("updated_at", formatTime(p.UpdatedAt)).
		Where(sq.Eq{"id": p.ID, "user_id": p.UserID}))
}

func (s *Store) DeletePlan(ctx context.Context, userID, id string) error {
	return s.execOne(ctx, s.sb.Delete("plans").
		Where(sq.Eq{"id": id, "user_id": userID}))
}

// ListPlans returns plans whose inclusive range overlaps [from, to].
func (s *Store) ListPlans(ctx context.Context, userID, from, to string) ([]models.Plan, error) {
	q := s.sb.Select(planColumns...).
		From("plans").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("start_date ASC", "created_at ASC", "id ASC")
	if to != "" {
		q = q.Where(sq.LtOrEq{"start_date": to})
	}
	if from != "" {
		q = q.Where(sq.GtOrEq{"end_date": from})
	}

	var rows []planRow
	if err := s.selectRows(ctx, &rows, q); err != nil {
		return nil, err
	}
	out := make([]models.Plan, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}
