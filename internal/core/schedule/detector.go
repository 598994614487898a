package schedule

import "shiftbell/internal/core/model"

// DetectEdge reports the window whose start or end minute equals the given
// minute of day. Start edges take strict priority: when one window ends the
// same minute another begins, only the start edge fires and the end alert is
// dropped.
//
// The detector carries no state across calls. De-duplication relies entirely
// on the caller evaluating it once per minute, on the tick where the wall
// clock's seconds read zero. A missed tick therefore skips the trigger; that
// is accepted degraded behavior, not an error.
func DetectEdge(windows []model.TimeWindow, minute int) (model.TimeWindow, model.Edge, bool) {
	for _, window := range windows {
		if window.Start == minute {
			return window, model.EdgeStart, true
		}
	}
	for _, window := range windows {
		if window.End == minute {
			return window, model.EdgeEnd, true
		}
	}
	return model.TimeWindow{}, "", false
}
