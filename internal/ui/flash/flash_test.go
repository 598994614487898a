package flash

import (
	"context"
	"sync"
	"testing"
	"time"
)

type pulseRecorder struct {
	mu     sync.Mutex
	states []bool
}

func (recorder *pulseRecorder) set(active bool) {
	recorder.mu.Lock()
	recorder.states = append(recorder.states, active)
	recorder.mu.Unlock()
}

func (recorder *pulseRecorder) snapshot() []bool {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]bool(nil), recorder.states...)
}

func (recorder *pulseRecorder) waitLen(t *testing.T, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(recorder.snapshot()) >= want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("only %d pulse states observed, want at least %d", len(recorder.snapshot()), want)
}

func TestPulseAlternates(t *testing.T) {
	t.Parallel()

	recorder := &pulseRecorder{}
	engine := New(Config{OnDuration: 5 * time.Millisecond, OffDuration: 5 * time.Millisecond}, recorder.set)

	engine.Start(context.Background())
	recorder.waitLen(t, 4)
	engine.Stop()

	states := recorder.snapshot()
	if !states[0] {
		t.Fatalf("first pulse state must be active")
	}
	for index := 1; index < 4; index++ {
		if states[index] == states[index-1] {
			t.Fatalf("pulse states must alternate, got %v", states[:4])
		}
	}
}

func TestStopSettlesInactive(t *testing.T) {
	t.Parallel()

	recorder := &pulseRecorder{}
	engine := New(DefaultConfig(), recorder.set)

	engine.Start(context.Background())
	recorder.waitLen(t, 1)
	engine.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		states := recorder.snapshot()
		if len(states) > 0 && !states[len(states)-1] {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("pulse must settle on the inactive state after Stop")
}

func TestContextCancelStopsPulse(t *testing.T) {
	t.Parallel()

	recorder := &pulseRecorder{}
	engine := New(Config{OnDuration: time.Millisecond, OffDuration: time.Millisecond}, recorder.set)

	ctx, cancel := context.WithCancel(context.Background())
	engine.Start(ctx)
	recorder.waitLen(t, 2)
	cancel()

	time.Sleep(20 * time.Millisecond)
	settled := len(recorder.snapshot())
	time.Sleep(20 * time.Millisecond)
	if got := len(recorder.snapshot()); got != settled {
		t.Fatalf("pulse kept running after context cancellation")
	}
}
