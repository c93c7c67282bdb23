// Package daytime maps wall-clock instants onto the "effective date" used by
// the to-do list: the calendar day in the reference timezone, shifted back by
// one when the instant falls before the user's rollover hour.
package daytime

import (
	"fmt"
	"time"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
)

// ReferenceLocation is the single timezone every effective date is computed in.
var ReferenceLocation = time.FixedZone(constants.ReferenceZoneName, constants.ReferenceUTCOffsetHours*60*60)

// Day is the result of resolving an instant.
type Day struct {
	Date  string         // YYYY-MM-DD
	Type  models.DayType // weekday or weekend
	Start time.Time      // midnight of Date in ReferenceLocation
}

// Resolve computes the effective date for now. rolloverHour must already be
// in [0,23]; see NormalizeRolloverHour.
func Resolve(rolloverHour int, now time.Time) Day {
	local := now.In(ReferenceLocation)
	if local.Hour() < rolloverHour {
		local = local.AddDate(0, 0, -1)
	}
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, ReferenceLocation)
	return Day{
		Date:  start.Format(constants.DateFormat),
		Type:  Classify(start),
		Start: start,
	}
}

// Classify returns weekend for Saturday and Sunday, weekday otherwise.
func Classify(t time.Time) models.DayType {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return models.DayTypeWeekend
	default:
		return models.DayTypeWeekday
	}
}

// NormalizeRolloverHour defaults an unset hour and clamps an out-of-range one
// to the default. The second return value is true when a set value was
// replaced, so callers can log it.
func NormalizeRolloverHour(hour *int) (int, bool) {
	if hour == nil {
		return constants.DefaultRolloverHour, false
	}
	if *hour < constants.MinRolloverHour || *hour > constants.MaxRolloverHour {
		return constants.DefaultRolloverHour, true
	}
	return *hour, false
}

// ValidRolloverHour reports whether h can be stored as-is.
func ValidRolloverHour(h int) bool {
	return h >= constants.MinRolloverHour && h <= constants.MaxRolloverHour
}

// ParseDate parses YYYY-MM-DD as midnight in ReferenceLocation.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, date, ReferenceLocation)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", date, err)
	}
	return t, nil
}

// ValidateDate checks the YYYY-MM-DD format.
func ValidateDate(date string) bool {
	_, err := ParseDate(date)
	return err == nil
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// DaysBetween returns to - from in whole days.
func DaysBetween(from, to string) (int, error) {
	f, err := ParseDate(from)
	if err != nil {
		return 0, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return 0, err
	}
	// Fixed offset zone, so every day is exactly 24h.
	return int(t.Sub(f).Hours() / 24), nil
}

// WeekStart returns the Monday on or before date.
func WeekStart(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format(constants.DateFormat), nil
}

// ClassifyDate classifies a YYYY-MM-DD date.
func ClassifyDate(date string) (models.DayType, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return Classify(t), nil
}
