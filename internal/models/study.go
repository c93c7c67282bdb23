package models

import "time"

// StudySession is one logged block of study time. A day may have many.
type StudySession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StudyDate string    `json:"study_date"` // YYYY-MM-DD
	Minutes   int       `json:"minutes"`
	CreatedAt time.Time `json:"created_at"`
}

type PlanColor string

const (
	PlanColorPurple PlanColor = "purple"
	PlanColorBlue   PlanColor = "blue"
	PlanColorGreen  PlanColor = "green"
	PlanColorRed    PlanColor = "red"
	PlanColorYellow PlanColor = "yellow"
	PlanColorPink   PlanColor = "pink"
	PlanColorOrange PlanColor = "orange"
	PlanColorGray   PlanColor = "gray"
)

// PlanColors lists the accepted calendar colours.
var PlanColors = []PlanColor{
	PlanColorPurple, PlanColorBlue, PlanColorGreen, PlanColorRed,
	PlanColorYellow, PlanColorPink, PlanColorOrange, PlanColorGray,
}

// Plan annotates an inclusive date range on the calendar.
type Plan struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	StartDate string    `json:"start_date"` // YYYY-MM-DD
	EndDate   string    `json:"end_date"`   // YYYY-MM-DD, inclusive
	Color     PlanColor `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
