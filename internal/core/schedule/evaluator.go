package schedule

import (
	"time"

	"shiftbell/internal/core/model"
)

// Evaluate derives the schedule state for the given wall-clock instant by
// scanning the window set once.
//
// A window is active on the half-open interval [start, end). When windows
// overlap, the last active match in scan order wins; the store keeps the set
// canonically sorted by start minute, so the result is stable for a stable
// input order. The next window is the one with the smallest positive
// start-now distance, first match winning ties.
func Evaluate(now time.Time, windows []model.TimeWindow, bounds model.DayBounds) model.ScheduleState {
	minute := MinuteOfDay(now)

	var active *model.TimeWindow
	var next *model.TimeWindow
	minDiff := model.MinutesPerDay + 1
	for index := range windows {
		window := &windows[index]
		if window.Contains(minute) {
			active = window
		}
		if diff := window.Start - minute; diff > 0 && diff < minDiff {
			minDiff = diff
			next = window
		}
	}

	state := model.ScheduleState{
		Mode:        model.ModeWorking,
		Active:      active,
		Next:        next,
		DayProgress: bounds.Progress(minute),
	}
	if active != nil {
		state.Mode = model.ModeOnBreak
		state.Countdown = untilMinute(now, active.End)
	} else if next != nil {
		state.Countdown = untilMinute(now, next.Start)
	}
	return state
}

// MinuteOfDay returns the minute-of-day component of an instant.
func MinuteOfDay(now time.Time) int {
	return now.Hour()*60 + now.Minute()
}

// untilMinute measures the wall-clock distance from now to the given minute
// of today, to second precision.
func untilMinute(now time.Time, minute int) time.Duration {
	target := time.Date(now.Year(), now.Month(), now.Day(), minute/60, minute%60, 0, 0, now.Location())
	remaining := target.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
