package journal

import (
	"fmt"
	"time"
)

// WindowRadius is the number of days shown on each side of the selected date.
const WindowRadius = 2

// WindowSize is the number of dates in a navigation window.
const WindowSize = 2*WindowRadius + 1

// Window returns the dates surrounding selected, oldest first, with the
// selected date in the middle slot.
func Window(selected time.Time) []time.Time {
	dates := make([]time.Time, 0, WindowSize)
	for offset := -WindowRadius; offset <= WindowRadius; offset++ {
		dates = append(dates, Step(selected, offset))
	}
	return dates
}

// HumanDate formats t as "March 1st".
func HumanDate(t time.Time) string {
	return fmt.Sprintf("%s %s", t.Month().String(), Ordinal(t.Day()))
}

// Ordinal renders n with its English suffix (1st, 2nd, 3rd, 11th, 22nd).
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// AbsentGlyph marks a date with no entry.
const AbsentGlyph = "∅"

// AbsentMessage is the notice shown when date has no entry.
func AbsentMessage(date time.Time) string {
	return fmt.Sprintf("No entry found for %s.", HumanDate(date))
}
