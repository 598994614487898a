package engine

import (
	"sync"
	"testing"
	"time"

	"shiftbell/internal/core/alarm"
	"shiftbell/internal/core/model"
)

type recordedPlay struct {
	sound  model.SoundSpec
	volume int
}

type fakePlayer struct {
	mu    sync.Mutex
	plays []recordedPlay
}

func (player *fakePlayer) Play(sound model.SoundSpec, volume int, done func()) (alarm.Playback, error) {
	player.mu.Lock()
	player.plays = append(player.plays, recordedPlay{sound: sound, volume: volume})
	player.mu.Unlock()
	return noopPlayback{}, nil
}

func (player *fakePlayer) playCount() int {
	player.mu.Lock()
	defer player.mu.Unlock()
	return len(player.plays)
}

type noopPlayback struct{}

func (noopPlayback) Stop() {}

type fakeResolver struct{}

func (fakeResolver) Resolve(selector string) model.SoundSpec {
	if selector == "" {
		selector = "bell"
	}
	return model.SoundSpec{ID: selector, Origin: model.SoundBuiltin}
}

func testEngine(player *fakePlayer) *Engine {
	windows := []model.TimeWindow{
		{ID: "morning", Name: "Morning Break", Start: 630, End: 660},
	}
	settings := model.DefaultSettings()
	engine := New(player, fakeResolver{}, Sources{
		Windows:  func() []model.TimeWindow { return windows },
		Settings: func() model.Settings { return settings },
	}, Config{TickInterval: time.Second, SafetyTimeout: time.Hour})

	// Ticks are driven by hand; the run loop is never started.
	engine.mu.Lock()
	engine.running = true
	engine.mu.Unlock()
	return engine
}

func tickAt(hour, minute, second int) time.Time {
	return time.Date(2026, time.March, 9, hour, minute, second, 0, time.UTC)
}

func drain(events <-chan Event) []Event {
	var collected []Event
	for {
		select {
		case event := <-events:
			collected = append(collected, event)
		default:
			return collected
		}
	}
}

func TestTickEmitsStateEveryTick(t *testing.T) {
	t.Parallel()

	player := &fakePlayer{}
	engine := testEngine(player)
	events := engine.Subscribe(64)

	engine.tick(tickAt(9, 0, 0))
	engine.tick(tickAt(9, 0, 1))

	collected := drain(events)
	var ticks, modeChanges int
	for _, event := range collected {
		switch event.Type {
		case EventTick:
			ticks++
			if event.State.Next == nil || event.State.Next.ID != "morning" {
				t.Fatalf("tick state next = %+v, want morning", event.State.Next)
			}
		case EventModeChange:
			modeChanges++
			if event.Mode != model.ModeWorking {
				t.Fatalf("initial mode = %v, want working", event.Mode)
			}
		}
	}
	if ticks != 2 {
		t.Fatalf("tick events = %d, want 2", ticks)
	}
	if modeChanges != 1 {
		t.Fatalf("mode changes = %d, want the initial one only", modeChanges)
	}
}

func TestEdgeFiresOncePerMinute(t *testing.T) {
	t.Parallel()

	player := &fakePlayer{}
	engine := testEngine(player)

	// Walk the clock across the start edge, second by second.
	engine.tick(tickAt(10, 29, 58))
	engine.tick(tickAt(10, 29, 59))
	for second := 0; second < 10; second++ {
		engine.tick(tickAt(10, 30, second))
	}

	if got := player.playCount(); got != 1 {
		t.Fatalf("alarm fired %d times across the minute, want exactly 1", got)
	}
}

func TestEdgeSkippedOffSecondZero(t *testing.T) {
	t.Parallel()

	player := &fakePlayer{}
	engine := testEngine(player)

	// The minute is only sampled on the seconds==0 tick. If that tick is
	// missed the trigger is skipped, not replayed.
	engine.tick(tickAt(10, 30, 1))
	engine.tick(tickAt(10, 30, 2))

	if got := player.playCount(); got != 0 {
		t.Fatalf("alarm fired %d times without a seconds-zero tick, want 0", got)
	}
}

func TestModeChangeOnBreakTransition(t *testing.T) {
	t.Parallel()

	player := &fakePlayer{}
	engine := testEngine(player)
	events := engine.Subscribe(64)

	engine.tick(tickAt(10, 29, 59))
	engine.tick(tickAt(10, 30, 0))
	engine.tick(tickAt(10, 30, 1))

	var modes []model.Mode
	for _, event := range drain(events) {
		if event.Type == EventModeChange {
			modes = append(modes, event.Mode)
		}
	}
	if len(modes) != 2 || modes[0] != model.ModeWorking || modes[1] != model.ModeOnBreak {
		t.Fatalf("mode change sequence = %v, want [working on_break]", modes)
	}
}

func TestAlarmEventsCarrySessionIdentity(t *testing.T) {
	t.Parallel()

	player := &fakePlayer{}
	engine := testEngine(player)
	events := engine.Subscribe(64)

	engine.tick(tickAt(10, 30, 0))

	var start *Event
	for _, event := range drain(events) {
		if event.Type == EventAlarmStart {
			copied := event
			start = &copied
		}
	}
	if start == nil {
		t.Fatalf("no alarm start event emitted")
	}
	if start.Window == nil || start.Window.ID != "morning" {
		t.Fatalf("alarm window = %+v, want morning", start.Window)
	}
	if start.Edge != model.EdgeStart {
		t.Fatalf("alarm edge = %v, want start", start.Edge)
	}
	if start.Sound.ID != model.DefaultSettings().StartSound {
		t.Fatalf("alarm sound = %q, want the configured start sound", start.Sound.ID)
	}

	engine.Alarm().Dismiss()
	var end *Event
	for _, event := range drain(events) {
		if event.Type == EventAlarmEnd {
			copied := event
			end = &copied
		}
	}
	if end == nil || end.Reason != alarm.ReasonDismissed {
		t.Fatalf("alarm end = %+v, want dismissed", end)
	}
}

func TestEndEdgeUsesEndSound(t *testing.T) {
	t.Parallel()

	player := &fakePlayer{}
	engine := testEngine(player)

	engine.tick(tickAt(11, 0, 0))

	player.mu.Lock()
	defer player.mu.Unlock()
	if len(player.plays) != 1 {
		t.Fatalf("alarm fired %d times, want 1", len(player.plays))
	}
	if got := player.plays[0].sound.ID; got != model.DefaultSettings().EndSound {
		t.Fatalf("end edge played %q, want the configured end sound", got)
	}
}

func TestStopClosesSubscriberChannels(t *testing.T) {
	t.Parallel()

	player := &fakePlayer{}
	engine := testEngine(player)
	events := engine.Subscribe(4)

	engine.Stop()

	if _, open := <-events; open {
		t.Fatalf("subscriber channel must be closed after Stop")
	}
	// A tick after Stop is ignored.
	engine.tick(tickAt(10, 30, 0))
	if got := player.playCount(); got != 0 {
		t.Fatalf("alarm fired after Stop")
	}
}
