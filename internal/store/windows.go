package store

import (
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"shiftbell/internal/core/model"

	"github.com/google/uuid"
)

// ErrNotFound indicates no window exists with the given id.
var ErrNotFound = errors.New("window not found")

// ErrEndNotAfterStart indicates a window whose end does not follow its start.
var ErrEndNotAfterStart = errors.New("window end must be after start")

// ChangeKind defines the type of a store mutation.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeUpdated ChangeKind = "updated"
	ChangeRemoved ChangeKind = "removed"
)

// Change describes one completed mutation. Subscribers are expected to
// re-read the full list; the store converges last-writer-wins. Warning is
// set when the mutation applied in memory but could not be persisted.
type Change struct {
	Kind    ChangeKind
	Window  model.TimeWindow
	Warning string
	At      time.Time
}

// Persister saves the full window set after each mutation.
type Persister func(windows []model.TimeWindow) error

// WindowPatch carries optional field updates for a window. Nil fields are
// left untouched; clock fields use HH:MM.
type WindowPatch struct {
	Name  *string
	Start *string
	End   *string
}

// Windows owns the ordered set of break windows. The set is kept sorted
// ascending by start minute so evaluator tie-breaks stay deterministic.
// Overlapping windows are deliberately not rejected.
type Windows struct {
	mu      sync.Mutex
	windows []model.TimeWindow
	persist Persister
	subs    []chan Change
}

// NewWindows creates a store seeded with the given windows.
func NewWindows(initial []model.TimeWindow, persist Persister) *Windows {
	store := &Windows{
		windows: append([]model.TimeWindow(nil), initial...),
		persist: persist,
	}
	store.sortLocked()
	return store
}

// Subscribe registers a new observer channel for mutations.
func (store *Windows) Subscribe(buffer int) <-chan Change {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Change, buffer)
	store.mu.Lock()
	store.subs = append(store.subs, ch)
	store.mu.Unlock()
	return ch
}

// Add validates and inserts a new window under a fresh unique id.
func (store *Windows) Add(name, start, end string) (model.TimeWindow, error) {
	startMinute, endMinute, err := parseRange(start, end)
	if err != nil {
		return model.TimeWindow{}, err
	}
	window := model.TimeWindow{
		ID:    uuid.NewString(),
		Name:  name,
		Start: startMinute,
		End:   endMinute,
	}

	store.mu.Lock()
	store.windows = append(store.windows, window)
	store.sortLocked()
	warning := store.persistLocked()
	store.notifyLocked(Change{Kind: ChangeAdded, Window: window, Warning: warning, At: time.Now()})
	store.mu.Unlock()
	return window, nil
}

// Update merges the patch into the window with the given id.
func (store *Windows) Update(id string, patch WindowPatch) (model.TimeWindow, error) {
	store.mu.Lock()
	index := store.indexLocked(id)
	if index < 0 {
		store.mu.Unlock()
		return model.TimeWindow{}, ErrNotFound
	}

	updated := store.windows[index]
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Start != nil {
		minute, err := model.ParseClock(*patch.Start)
		if err != nil {
			store.mu.Unlock()
			return model.TimeWindow{}, err
		}
		updated.Start = minute
	}
	if patch.End != nil {
		minute, err := model.ParseClock(*patch.End)
		if err != nil {
			store.mu.Unlock()
			return model.TimeWindow{}, err
		}
		updated.End = minute
	}
	if updated.End <= updated.Start {
		store.mu.Unlock()
		return model.TimeWindow{}, ErrEndNotAfterStart
	}

	store.windows[index] = updated
	store.sortLocked()
	warning := store.persistLocked()
	store.notifyLocked(Change{Kind: ChangeUpdated, Window: updated, Warning: warning, At: time.Now()})
	store.mu.Unlock()
	return updated, nil
}

// Delete removes the window with the given id.
func (store *Windows) Delete(id string) error {
	store.mu.Lock()
	index := store.indexLocked(id)
	if index < 0 {
		store.mu.Unlock()
		return ErrNotFound
	}
	removed := store.windows[index]
	store.windows = append(store.windows[:index], store.windows[index+1:]...)
	warning := store.persistLocked()
	store.notifyLocked(Change{Kind: ChangeRemoved, Window: removed, Warning: warning, At: time.Now()})
	store.mu.Unlock()
	return nil
}

// List returns a copy of the window set, sorted ascending by start minute.
func (store *Windows) List() []model.TimeWindow {
	store.mu.Lock()
	defer store.mu.Unlock()
	return append([]model.TimeWindow(nil), store.windows...)
}

func (store *Windows) indexLocked(id string) int {
	for index, window := range store.windows {
		if window.ID == id {
			return index
		}
	}
	return -1
}

func (store *Windows) sortLocked() {
	sort.SliceStable(store.windows, func(left, right int) bool {
		return store.windows[left].Start < store.windows[right].Start
	})
}

// persistLocked writes the set through the persister. A write failure is a
// non-fatal warning: in-memory state stays authoritative for the session.
func (store *Windows) persistLocked() string {
	if store.persist == nil {
		return ""
	}
	snapshot := append([]model.TimeWindow(nil), store.windows...)
	if err := store.persist(snapshot); err != nil {
		log.Printf("store: persist windows: %v", err)
		return err.Error()
	}
	return ""
}

func (store *Windows) notifyLocked(change Change) {
	for _, ch := range store.subs {
		select {
		case ch <- change:
		default:
		}
	}
}

func parseRange(start, end string) (int, int, error) {
	startMinute, err := model.ParseClock(start)
	if err != nil {
		return 0, 0, err
	}
	endMinute, err := model.ParseClock(end)
	if err != nil {
		return 0, 0, err
	}
	if endMinute <= startMinute {
		return 0, 0, ErrEndNotAfterStart
	}
	return startMinute, endMinute, nil
}
