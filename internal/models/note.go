package models

import "time"

type NoteKind string

const (
	NoteKindNote  NoteKind = "note"
	NoteKindLink  NoteKind = "link"
	NoteKindImage NoteKind = "image"
	NoteKindBook  NoteKind = "book"
)

// Valid reports whether k is a known note kind.
func (k NoteKind) Valid() bool {
	switch k {
	case NoteKindNote, NoteKindLink, NoteKindImage, NoteKindBook:
		return true
	}
	return false
}

type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Kind      NoteKind  `json:"kind"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	URL       string    `json:"url,omitempty"`
	ImagePath string    `json:"image_path,omitempty"` // object storage key; upload happens elsewhere
	Author    string    `json:"author,omitempty"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
