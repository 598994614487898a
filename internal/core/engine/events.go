package engine

import (
	"time"

	"shiftbell/internal/core/alarm"
	"shiftbell/internal/core/model"
)

// EventType defines the type of engine event.
type EventType string

const (
	// EventTick carries the recomputed schedule state, once per second.
	EventTick EventType = "tick"
	// EventModeChange fires only when the working/on-break mode flips.
	EventModeChange EventType = "mode_change"
	// EventAlarmStart requests overlay, playback and optional notification.
	EventAlarmStart EventType = "alarm_start"
	// EventAlarmEnd requests overlay hide and reports why the alarm ended.
	EventAlarmEnd EventType = "alarm_end"
)

// Event represents an engine update for observers. Window is the active
// window on break-mode changes, the next window otherwise, and the
// triggering window on alarm events.
type Event struct {
	Type   EventType
	State  model.ScheduleState
	Mode   model.Mode
	Window *model.TimeWindow
	Edge   model.Edge
	Sound  model.SoundSpec
	Volume int
	Reason alarm.EndReason
	At     time.Time
}
