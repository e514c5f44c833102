package schedule

import (
	"strings"
	"time"

	"campustix/internal/domain"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Combine parses date (AAAA-MM-JJ) and time (HH:MM, seconds optional) as a
// wall clock reading in loc.
func Combine(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	timeStr = strings.TrimSpace(timeStr)
	if dateStr == "" || timeStr == "" {
		return time.Time{}, domain.ErrDateTimeRequired
	}
	tDate, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	tTime, err := time.Parse(TimeLayout, timeStr)
	if err != nil {
		tTime, err = time.Parse("15:04:05", timeStr)
		if err != nil {
			return time.Time{}, domain.ErrInvalidTime
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(tDate.Year(), tDate.Month(), tDate.Day(),
		tTime.Hour(), tTime.Minute(), tTime.Second(), 0, loc), nil
}

// CombineFuture is Combine plus the rule that the instant is not strictly
// before now.
func CombineFuture(dateStr, timeStr string, loc *time.Location, now time.Time) (time.Time, error) {
	dt, err := Combine(dateStr, timeStr, loc)
	if err != nil {
		return time.Time{}, err
	}
	if dt.Before(now) {
		return time.Time{}, domain.ErrDateTimeInPast
	}
	return dt, nil
}

// Format renders t in loc for display, "" for an unset time.
func Format(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("02/01/2006 à 15:04")
}
