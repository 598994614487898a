package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the number of schedule minutes in one day.
const MinutesPerDay = 24 * 60

// ErrInvalidClock indicates a value that does not parse as HH:MM.
var ErrInvalidClock = errors.New("invalid clock value")

// TimeWindow is a named, half-open break interval within one day.
// The end minute belongs to working time again.
type TimeWindow struct {
	ID    string
	Name  string
	Start int
	End   int
}

// Contains reports whether the minute of day falls inside the window.
func (window TimeWindow) Contains(minute int) bool {
	return minute >= window.Start && minute < window.End
}

// StartClock returns the start minute as HH:MM.
func (window TimeWindow) StartClock() string {
	return FormatClock(window.Start)
}

// EndClock returns the end minute as HH:MM.
func (window TimeWindow) EndClock() string {
	return FormatClock(window.End)
}

// ParseClock converts an HH:MM value to a minute of day.
func ParseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	return hours*60 + minutes, nil
}

// FormatClock converts a minute of day to HH:MM.
func FormatClock(minute int) string {
	if minute < 0 {
		minute = 0
	}
	if minute >= MinutesPerDay {
		minute = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
