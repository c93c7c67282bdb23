// Package notes stores freeform study notes: plain text, links, image
// references and books.
package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

var (
	ErrKind      = errors.New("note kind must be note, link, image or book")
	ErrTitle     = errors.New("title cannot be empty")
	ErrURL       = errors.New("link notes need a url")
	ErrImagePath = errors.New("image notes need an image path")
	ErrQuery     = errors.New("unknown sort key or order")
)

type Store interface {
	AddNote(ctx context.Context, n models.Note) error
	GetNote(ctx context.Context, userID, id string) (models.Note, error)
	UpdateNote(ctx context.Context, n models.Note) error
	DeleteNote(ctx context.Context, userID, id string) error
	ListNotes(ctx context.Context, userID string, filter storage.NoteFilter) ([]models.Note, error)
}

// Input is a new note as submitted by the user.
type Input struct {
	Kind      models.NoteKind `json:"kind"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	URL       string          `json:"url"`
	ImagePath string          `json:"image_path"`
	Author    string          `json:"author"`
	Pinned    bool            `json:"pinned"`
}

// Validate trims the fields and checks the per-kind requirements.
func (in *Input) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)
	in.ImagePath = strings.TrimSpace(in.ImagePath)
	in.Author = strings.TrimSpace(in.Author)
	if in.Kind == "" {
		in.Kind = models.NoteKindNote
	}

	if !in.Kind.Valid() {
		return ErrKind
	}
	if in.Title == "" {
		return ErrTitle
	}
	switch in.Kind {
	case models.NoteKindLink:
		if in.URL == "" {
			return ErrURL
		}
	case models.NoteKindImage:
		if in.ImagePath == "" {
			return ErrImagePath
		}
	}
	return nil
}

type Service struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) Add(ctx context.Context, userID string, in Input) (models.Note, error) {
	if err := in.Validate(); err != nil {
		return models.Note{}, err
	}
	now := s.now()
	n := models.Note{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      in.Kind,
		Title:     in.Title,
		Content:   in.Content,
		URL:       in.URL,
		ImagePath: in.ImagePath,
		Author:    in.Author,
		Pinned:    in.Pinned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.AddNote(ctx, n); err != nil {
		return models.Note{}, fmt.Errorf("failed to add note: %w", err)
	}
	return n, nil
}

func (s *Service) SetPinned(ctx context.Context, userID, id string, pinned bool) (models.Note, error) {
	n, err := s.store.GetNote(ctx, userID, id)
	if err != nil {
		return models.Note{}, fmt.Errorf("failed to load note %s: %w", id, err)
	}
	if n.Pinned == pinned {
		return n, nil
	}
	n.Pinned = pinned
	n.UpdatedAt = s.now()
	if err := s.store.UpdateNote(ctx, n); err != nil {
		return models.Note{}, fmt.Errorf("failed to update note: %w", err)
	}
	return n, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteNote(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete note %s: %w", id, err)
	}
	return nil
}

// List loads the user's notes of kind ("" for all) and arranges them.
func (s *Service) List(ctx context.Context, userID string, kind models.NoteKind, q Query) ([]models.Note, error) {
	if kind != "" && !kind.Valid() {
		return nil, ErrKind
	}
	all, err := s.store.ListNotes(ctx, userID, storage.NoteFilter{Kind: kind})
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return Arrange(all, q)
}
