package sqlstore

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/studylit/internal/models"
)

type profileRow struct {
	UserID       string         `db:"user_id"`
	Username     string         `db:"username"`
	ExamDate     sql.NullString `db:"exam_date"`
	RolloverHour sql.NullInt64  `db:"rollover_hour"`
	AvatarPath   string         `db:"avatar_path"`
	UpdatedAt    string         `db:"updated_at"`
}

func (s *Store) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	var row profileRow
	err := s.getRow(ctx, &row, s.sb.Select("user_id", "username", "exam_date", "rollover_hour", "avatar_path", "updated_at").
		From("profiles").
		Where(sq.Eq{"user_id": userID}))
	if err != nil {
		return models.Profile{}, err
	}

	p := models.Profile{
		UserID:     row.UserID,
		Username:   row.Username,
		ExamDate:   row.ExamDate.String,
		AvatarPath: row.AvatarPath,
		UpdatedAt:  parseTime(row.UpdatedAt),
	}
	if row.RolloverHour.Valid {
		h := int(row.RolloverHour.Int64)
		p.RolloverHour = &h
	}
	return p, nil
}

func (s *Store) SaveProfile(ctx context.Context, p models.Profile) error {
	var hour sql.NullInt64
	if p.RolloverHour != nil {
		hour = sql.NullInt64{Int64: int64(*p.RolloverHour), Valid: true}
	}
	_, err := s.exec(ctx, s.sb.Insert("profiles").
		Columns("user_id", "username", "exam_date", "rollover_hour", "avatar_path", "updated_at").
		Values(p.UserID, p.Username, nullString(p.ExamDate), hour, p.AvatarPath, formatTime(p.UpdatedAt)).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET "+
			"username = excluded.username, exam_date = excluded.exam_date, "+
			"rollover_hour = excluded.rollover_hour, avatar_path = excluded.avatar_path, "+
			"updated_at = excluded.updated_at"))
	return err
}
