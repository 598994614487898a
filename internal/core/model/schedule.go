package model

import "time"

// Mode represents the current workday status.
type Mode string

const (
	ModeWorking Mode = "working"
	ModeOnBreak Mode = "on_break"
)

// Edge identifies which boundary of a window was reached.
type Edge string

const (
	EdgeStart Edge = "start"
	EdgeEnd   Edge = "end"
)

// ScheduleState is the derived per-tick view of the schedule.
// It is recomputed every second and never persisted.
type ScheduleState struct {
	Mode        Mode
	Active      *TimeWindow
	Next        *TimeWindow
	Countdown   time.Duration
	DayProgress float64
}

// DayBounds is the reference interval for day-progress computation.
type DayBounds struct {
	Start int
	End   int
}

// DefaultDayBounds returns the 08:00-17:00 workday.
func DefaultDayBounds() DayBounds {
	return DayBounds{Start: 8 * 60, End: 17 * 60}
}

// Progress returns the elapsed fraction of the day bounds as a percentage,
// clamped to [0, 100] and zero before the day starts.
func (bounds DayBounds) Progress(minute int) float64 {
	total := bounds.End - bounds.Start
	if total <= 0 {
		return 0
	}
	if minute <= bounds.Start {
		return 0
	}
	progress := float64(minute-bounds.Start) / float64(total) * 100
	if progress > 100 {
		return 100
	}
	return progress
}
