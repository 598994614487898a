package engine

import (
	"sync"
	"time"

	"shiftbell/internal/core/alarm"
	"shiftbell/internal/core/model"
	"shiftbell/internal/core/schedule"
)

// Sources supply the engine with per-tick snapshots. Both must be safe for
// concurrent use; the engine never mutates what they return.
type Sources struct {
	Windows  func() []model.TimeWindow
	Settings func() model.Settings
}

// Config contains runtime options for the engine.
type Config struct {
	TickInterval  time.Duration
	SafetyTimeout time.Duration
}

// Engine samples the wall clock at 1 Hz and, within each tick, runs the
// evaluator, the edge detector and the alarm session strictly in sequence.
type Engine struct {
	mu           sync.Mutex
	sources      Sources
	options      Config
	alarm        *alarm.Controller
	previousMode model.Mode
	hasMode      bool
	events       []chan Event
	stopCh       chan struct{}
	running      bool
	now          func() time.Time
}

// New creates an engine wired to the given player and sound resolver.
func New(player alarm.Player, resolver alarm.Resolver, sources Sources, options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	engine := &Engine{
		sources: sources,
		options: options,
		stopCh:  make(chan struct{}),
		now:     time.Now,
	}
	engine.alarm = alarm.New(player, resolver, alarm.Config{SafetyTimeout: options.SafetyTimeout}, alarm.Hooks{
		OnStart: engine.handleAlarmStart,
		OnEnd:   engine.handleAlarmEnd,
	})
	return engine
}

// Alarm returns the alarm session controller.
func (engine *Engine) Alarm() *alarm.Controller {
	return engine.alarm
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	engine.events = append(engine.events, ch)
	engine.mu.Unlock()
	return ch
}

// Start launches the ticking loop.
func (engine *Engine) Start() {
	engine.mu.Lock()
	if engine.running {
		engine.mu.Unlock()
		return
	}
	engine.running = true
	engine.hasMode = false
	engine.mu.Unlock()

	go engine.run()
}

// Stop terminates the ticking loop and closes observer channels.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	if !engine.running {
		engine.mu.Unlock()
		return
	}
	close(engine.stopCh)
	engine.running = false
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	engine.alarm.Dismiss()
	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) run() {
	ticker := time.NewTicker(engine.options.TickInterval)
	defer ticker.Stop()

	engine.tick(engine.now())
	for {
		select {
		case <-engine.stopCh:
			return
		case <-ticker.C:
			engine.tick(engine.now())
		}
	}
}

// tick runs one evaluation pass. Trigger detection only happens on the tick
// where the clock's seconds read zero; that single gate is what keeps an edge
// from re-firing across the 60 ticks sharing the same minute.
func (engine *Engine) tick(tickTime time.Time) {
	engine.mu.Lock()
	if !engine.running {
		engine.mu.Unlock()
		return
	}
	windows := engine.sources.Windows()
	settings := engine.sources.Settings()
	state := schedule.Evaluate(tickTime, windows, settings.Day)

	modeChanged := !engine.hasMode || state.Mode != engine.previousMode
	engine.hasMode = true
	engine.previousMode = state.Mode
	engine.mu.Unlock()

	if tickTime.Second() == 0 {
		if window, edge, ok := schedule.DetectEdge(windows, schedule.MinuteOfDay(tickTime)); ok {
			selector := settings.StartSound
			if edge == model.EdgeEnd {
				selector = settings.EndSound
			}
			engine.alarm.Trigger(window, edge, selector, settings.Volume)
		}
	}

	if modeChanged {
		contextWindow := state.Active
		if contextWindow == nil {
			contextWindow = state.Next
		}
		engine.emit(Event{
			Type:   EventModeChange,
			State:  state,
			Mode:   state.Mode,
			Window: contextWindow,
			At:     tickTime,
		})
	}
	engine.emit(Event{
		Type:  EventTick,
		State: state,
		Mode:  state.Mode,
		At:    tickTime,
	})
}

func (engine *Engine) handleAlarmStart(window model.TimeWindow, edge model.Edge, sound model.SoundSpec, volume int) {
	engine.emit(Event{
		Type:   EventAlarmStart,
		Window: &window,
		Edge:   edge,
		Sound:  sound,
		Volume: volume,
		At:     engine.now(),
	})
}

func (engine *Engine) handleAlarmEnd(reason alarm.EndReason) {
	engine.emit(Event{
		Type:   EventAlarmEnd,
		Reason: reason,
		At:     engine.now(),
	})
}

func (engine *Engine) emit(event Event) {
	engine.mu.Lock()
	events := append([]chan Event(nil), engine.events...)
	engine.mu.Unlock()
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
