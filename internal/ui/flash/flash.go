package flash

import (
	"context"
	"sync"
	"time"
)

// Config contains pulse timing values.
type Config struct {
	OnDuration  time.Duration
	OffDuration time.Duration
}

// DefaultConfig returns the alarm pulse timing.
func DefaultConfig() Config {
	return Config{
		OnDuration:  450 * time.Millisecond,
		OffDuration: 450 * time.Millisecond,
	}
}

// Engine drives the overlay background pulse while an alarm is active.
// setActive is called from the engine's own goroutine; callers wrap it with
// their toolkit's thread dispatch.
type Engine struct {
	mu        sync.Mutex
	config    Config
	setActive func(bool)
	cancel    context.CancelFunc
}

// New creates a flash engine.
func New(config Config, setActive func(bool)) *Engine {
	if config.OnDuration <= 0 {
		config.OnDuration = DefaultConfig().OnDuration
	}
	if config.OffDuration <= 0 {
		config.OffDuration = DefaultConfig().OffDuration
	}
	return &Engine{config: config, setActive: setActive}
}

// Start begins pulsing until the context is cancelled or Stop is called.
func (engine *Engine) Start(parent context.Context) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.mu.Unlock()

	go engine.run(runCtx)
}

// Stop terminates the pulse and settles on the inactive state.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
	engine.mu.Unlock()
}

func (engine *Engine) run(ctx context.Context) {
	defer engine.setActive(false)
	for {
		engine.setActive(true)
		if !sleepWithContext(ctx, engine.config.OnDuration) {
			return
		}
		engine.setActive(false)
		if !sleepWithContext(ctx, engine.config.OffDuration) {
			return
		}
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
