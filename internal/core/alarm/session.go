package alarm

import (
	"log"
	"sync"
	"time"

	"shiftbell/internal/core/model"
)

// Phase represents the alarm session lifecycle state.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhasePlaying Phase = "playing"
)

// EndReason records how a session left the Playing phase.
type EndReason string

const (
	ReasonDismissed EndReason = "dismissed"
	ReasonCompleted EndReason = "completed"
	ReasonTimedOut  EndReason = "timed_out"
	ReasonReplaced  EndReason = "replaced"
)

// Playback is a handle to in-flight audio.
type Playback interface {
	Stop()
}

// Player starts audio playback. The done callback fires when the sound ends
// naturally; it never fires after Stop.
type Player interface {
	Play(sound model.SoundSpec, volume int, done func()) (Playback, error)
}

// Resolver maps a sound selector to a concrete sound. An empty or unknown
// selector resolves to the default sound.
type Resolver interface {
	Resolve(selector string) model.SoundSpec
}

// Config contains runtime options for the alarm controller.
type Config struct {
	SafetyTimeout time.Duration
}

// Hooks are the controller's outbound notifications. They are invoked
// outside the controller's lock, end-of-old before start-of-new.
type Hooks struct {
	OnStart func(window model.TimeWindow, edge model.Edge, sound model.SoundSpec, volume int)
	OnEnd   func(reason EndReason)
}

// Controller governs the bounded lifetime of one alarm at a time: playback,
// a safety auto-dismiss timeout, and manual dismissal. At most one session is
// ever in the Playing phase; triggering a new one force-stops the previous
// session's playback and timer first.
type Controller struct {
	mu         sync.Mutex
	player     Player
	resolver   Resolver
	options    Config
	hooks      Hooks
	phase      Phase
	generation uint64
	playback   Playback
	timer      *time.Timer
	window     model.TimeWindow
	edge       model.Edge
	startedAt  time.Time
}

// New creates an alarm controller.
func New(player Player, resolver Resolver, options Config, hooks Hooks) *Controller {
	if options.SafetyTimeout <= 0 {
		options.SafetyTimeout = time.Minute
	}
	return &Controller{
		player:   player,
		resolver: resolver,
		options:  options,
		hooks:    hooks,
		phase:    PhaseIdle,
	}
}

// Trigger starts a new alarm session for the given edge. A playback failure
// falls back to the default sound; if that fails too the session stays
// Playing silently and the safety timeout remains the backstop.
func (controller *Controller) Trigger(window model.TimeWindow, edge model.Edge, selector string, volume int) {
	controller.mu.Lock()
	endHook := controller.stopLocked(ReasonReplaced)

	controller.generation++
	generation := controller.generation
	controller.phase = PhasePlaying
	controller.window = window
	controller.edge = edge
	controller.startedAt = time.Now()

	done := func() {
		controller.finish(generation, ReasonCompleted)
	}
	sound := controller.resolver.Resolve(selector)
	playback, err := controller.player.Play(sound, volume, done)
	if err != nil {
		log.Printf("alarm: play %q: %v", sound.Name, err)
		fallback := controller.resolver.Resolve("")
		if fallback.ID != sound.ID {
			sound = fallback
			playback, err = controller.player.Play(sound, volume, done)
		}
		if err != nil {
			log.Printf("alarm: fallback sound unavailable: %v", err)
			playback = nil
		}
	}
	controller.playback = playback
	controller.timer = time.AfterFunc(controller.options.SafetyTimeout, func() {
		controller.finish(generation, ReasonTimedOut)
	})

	startHook := controller.hooks.OnStart
	controller.mu.Unlock()

	if endHook != nil {
		endHook()
	}
	if startHook != nil {
		startHook(window, edge, sound, volume)
	}
}

// Dismiss ends the active session from a manual action. It is a no-op when
// nothing is playing.
func (controller *Controller) Dismiss() {
	controller.mu.Lock()
	generation := controller.generation
	controller.mu.Unlock()
	controller.finish(generation, ReasonDismissed)
}

// State reports the current phase and, while playing, the session identity.
func (controller *Controller) State() (Phase, model.TimeWindow, model.Edge) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.phase, controller.window, controller.edge
}

// StartedAt returns when the current session entered the Playing phase.
func (controller *Controller) StartedAt() time.Time {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.startedAt
}

// finish moves the session to Idle. Completion, timeout and dismissal all
// funnel through here; the generation check makes stale callbacks no-ops, so
// a late safety-timer fire after a natural completion does nothing.
func (controller *Controller) finish(generation uint64, reason EndReason) {
	controller.mu.Lock()
	if controller.phase != PhasePlaying || controller.generation != generation {
		controller.mu.Unlock()
		return
	}
	endHook := controller.stopLocked(reason)
	controller.mu.Unlock()

	if endHook != nil {
		endHook()
	}
}

// stopLocked tears playback and the safety timer down as a unit and returns
// the end notification to run after unlocking.
func (controller *Controller) stopLocked(reason EndReason) func() {
	if controller.phase != PhasePlaying {
		return nil
	}
	if controller.playback != nil {
		controller.playback.Stop()
		controller.playback = nil
	}
	if controller.timer != nil {
		controller.timer.Stop()
		controller.timer = nil
	}
	controller.phase = PhaseIdle

	endHook := controller.hooks.OnEnd
	if endHook == nil {
		return nil
	}
	return func() {
		endHook(reason)
	}
}
