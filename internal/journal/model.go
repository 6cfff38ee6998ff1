package journal

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar layout used for entry keys.
const DateLayout = "2006-01-02"

// Entry is a single date-keyed journal record as returned by a Source.
type Entry struct {
	ID        int64     `json:"id,omitempty"`
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Day parses the entry's date key in the local timezone.
func (e Entry) Day() (time.Time, error) {
	return ParseKey(e.Date)
}

// Key formats the calendar day of t as YYYY-MM-DD.
func Key(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseKey parses a YYYY-MM-DD key into local midnight.
func ParseKey(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date: %w", err)
	}
	return parsed, nil
}

// Today returns local midnight of the current day.
func Today() time.Time {
	return Midnight(time.Now())
}

// Midnight truncates t to the start of its day, keeping its location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// Step moves date by the given number of days.
func Step(date time.Time, days int) time.Time {
	return date.AddDate(0, 0, days)
}
