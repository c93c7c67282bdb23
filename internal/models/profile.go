package models

import "time"

// Profile holds per-user settings read by the day resolver and the home
// screen summary.
type Profile struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	ExamDate     string    `json:"exam_date,omitempty"`     // YYYY-MM-DD
	RolloverHour *int      `json:"rollover_hour,omitempty"` // nil means unset
	AvatarPath   string    `json:"avatar_path,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}
