package store

import (
	"log"
	"sync"

	"shiftbell/internal/core/model"
)

// Settings holds the live settings snapshot shared between the UI and the
// engine. The engine reads it once per tick; only the UI writes it.
type Settings struct {
	mu      sync.Mutex
	current model.Settings
	persist func(model.Settings) error
}

// NewSettings creates a settings store seeded with the given values.
func NewSettings(initial model.Settings, persist func(model.Settings) error) *Settings {
	return &Settings{current: initial, persist: persist}
}

// Current returns the settings snapshot.
func (store *Settings) Current() model.Settings {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.current
}

// Update replaces the snapshot and persists it. A persistence failure is
// returned as a non-fatal warning; the in-memory snapshot is kept either way.
func (store *Settings) Update(settings model.Settings) string {
	store.mu.Lock()
	store.current = settings
	persist := store.persist
	store.mu.Unlock()

	if persist == nil {
		return ""
	}
	if err := persist(settings); err != nil {
		log.Printf("store: persist settings: %v", err)
		return err.Error()
	}
	return ""
}
