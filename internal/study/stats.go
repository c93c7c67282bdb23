package study

import (
	"context"
	"fmt"

	"github.com/julianstephens/studylit/internal/daytime"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/profile"
)

type Summary struct {
	Today             string `json:"today"`
	WeekMinutes       int    `json:"week_minutes"`
	StreakDays        int    `json:"streak_days"`
	TotalCompleted    int    `json:"total_completed"`
	WeekdayMinutes    int    `json:"weekday_minutes"`
	WeekendMinutes    int    `json:"weekend_minutes"`
	ExamCountdownDays *int   `json:"exam_countdown_days,omitempty"`
}

// Summary computes the home screen figures for today's effective date.
func (s *Service) Summary(ctx context.Context, userID string, rolloverHour int, examDate string) (Summary, error) {
	today := s.today(rolloverHour).Date
	sum := Summary{
		Today:             today,
		ExamCountdownDays: profile.ExamCountdown(examDate, today),
	}

	sessions, err := s.store.ListSessions(ctx, userID, "", today)
	if err != nil {
		return sum, fmt.Errorf("failed to load sessions: %w", err)
	}
	totals := make(map[string]int)
	for _, sess := range sessions {
		totals[sess.StudyDate] += sess.Minutes
	}

	weekStart, err := daytime.WeekStart(today)
	if err != nil {
		return sum, err
	}
	for date, minutes := range totals {
		if date >= weekStart {
			sum.WeekMinutes += minutes
		}
		dt, err := daytime.ClassifyDate(date)
		if err != nil {
			continue
		}
		if dt == models.DayTypeWeekend {
			sum.WeekendMinutes += minutes
		} else {
			sum.WeekdayMinutes += minutes
		}
	}

	sum.StreakDays = Streak(totals, today)

	sum.TotalCompleted, err = s.store.CountCompletedHistory(ctx, userID)
	if err != nil {
		return sum, fmt.Errorf("failed to count completed todos: %w", err)
	}
	return sum, nil
}

// Streak counts consecutive days with study time ending today. A day without
// study yet does not break a streak that ran through yesterday.
func Streak(totals map[string]int, today string) int {
	day := today
	if totals[day] <= 0 {
		prev, err := daytime.AddDays(day, -1)
		if err != nil {
			return 0
		}
		day = prev
	}

	streak := 0
	for totals[day] > 0 {
		streak++
		prev, err := daytime.AddDays(day, -1)
		if err != nil {
			break
		}
		day = prev
	}
	return streak
}
