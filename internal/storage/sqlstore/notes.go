package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

var noteColumns = []string{
	"id", "user_id", "kind", "title", "content", "url", "image_path", "author", "pinned", "created_at", "updated_at",
}

type noteRow struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	Kind      string `db:"kind"`
	Title     string `db:"title"`
	Content   string `db:"content"`
	URL       string `db:"url"`
	ImagePath string `db:"image_path"`
	Author    string `db:"author"`
	Pinned    bool   `db:"pinned"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

func (r noteRow) model() models.Note {
	return models.Note{
		ID:        r.ID,
		UserID:    r.UserID,
		Kind:      models.NoteKind(r.Kind),
		Title:     r.Title,
		Content:   r.Content,
		URL:       r.URL,
		ImagePath: r.ImagePath,
		Author:    r.Author,
		Pinned:    r.Pinned,
		CreatedAt: parseTime(r.CreatedAt),
		UpdatedAt: parseTime(r.UpdatedAt),
	}
}

func (s *Store) AddNote(ctx context.Context, n models.Note) error {
	_, err := s.exec(ctx, s.sb.Insert("notes").
		Columns(noteColumns...).
		Values(n.ID, n.UserID, string(n.Kind), n.Title, n.Content, n.URL, n.ImagePath, n.Author, n.Pinned,
			formatTime(n.CreatedAt), formatTime(n.UpdatedAt)))
	return err
}

func (s *Store) GetNote(ctx context.Context, userID, id string) (models.Note, error) {
	var row noteRow
	err := s.getRow(ctx, &row, s.sb.Select(noteColumns...).
		From("notes").
		Where(sq.Eq{"id": id, "user_id": userID}))
	if err != nil {
		return models.Note{}, err
	}
	return row.model(), nil
}

func (s *Store) UpdateNote(ctx context.Context, n models.Note) error {
	return s.execOne(ctx, s.sb.Update("notes").
		Set("kind", string(n.Kind)).
		Set("title", n.Title).
		Set("content", n.Content).
		Set("url", n.URL).
		Set("image_path", n.ImagePath).
		Set("author", n.Author).
		Set("pinned", n.Pinned).
		Set("updated_at", formatTime(n.UpdatedAt)).
		Where(sq.Eq{"id": n.ID, "user_id": n.UserID}))
}

func (s *Store) DeleteNote(ctx context.Context, userID, id string) error {
	return s.execOne(ctx, s.sb.Delete("notes").
		Where(sq.Eq{"id": id, "user_id": userID}))
}

// ListNotes returns notes newest first. Pinning and search are applied by
// the notes service.
func (s *Store) ListNotes(ctx context.Context, userID string, filter storage.NoteFilter) ([]models.Note, error) {
	q := s.sb.Select(noteColumns...).
		From("notes").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id ASC")
	if filter.Kind != "" {
		q = q.Where(sq.Eq{"kind": string(filter.Kind)})
	}

	var rows []noteRow
	if err := s.selectRows(ctx, &rows, q); err != nil {
		return nil, err
	}
	out := make([]models.Note, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}
