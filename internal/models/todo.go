package models

import "time"

// DayType classifies an effective date. Templates repeat on one of the two.
type DayType string

const (
	DayTypeWeekday DayType = "weekday"
	DayTypeWeekend DayType = "weekend"
)

// Valid reports whether d is one of the known day types.
func (d DayType) Valid() bool {
	return d == DayTypeWeekday || d == DayTypeWeekend
}

// Opposite returns the other day type.
func (d DayType) Opposite() DayType {
	if d == DayTypeWeekend {
		return DayTypeWeekday
	}
	return DayTypeWeekend
}

// Template is a recurring to-do definition. Templates are never hard-deleted;
// deactivation keeps their history readable.
type Template struct {
	ID            string    `json:"id" yaml:"id"`
	UserID        string    `json:"user_id" yaml:"user_id"`
	Title         string    `json:"title" yaml:"title"`
	RepeatType    DayType   `json:"repeat_type" yaml:"repeat_type"`
	IsActive      bool      `json:"is_active" yaml:"is_active"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" yaml:"updated_at"`
	DeactivatedAt string    `json:"deactivated_at,omitempty" yaml:"deactivated_at,omitempty"` // YYYY-MM-DD
}

// ProgressEntry is the live completion state of one template on one
// effective date. (UserID, TemplateID, EffectiveDate) is unique.
type ProgressEntry struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	TemplateID    string     `json:"template_id"`
	EffectiveDate string     `json:"effective_date"` // YYYY-MM-DD
	Title         string     `json:"title"`          // joined from the template
	IsDone        bool       `json:"is_done"`
	DoneAt        *time.Time `json:"done_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// HistoryRecord is the permanent outcome of a template on a calendar day,
// keyed by (UserID, TemplateID, Date).
type HistoryRecord struct {
	UserID     string    `json:"user_id" yaml:"user_id"`
	TemplateID string    `json:"template_id" yaml:"template_id"`
	Date       string    `json:"date" yaml:"date"` // YYYY-MM-DD
	Title      string    `json:"title" yaml:"title"`
	IsDone     bool      `json:"is_done" yaml:"is_done"`
	UpdatedAt  time.Time `json:"updated_at" yaml:"updated_at"`
}
