package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	settingsFileName = "settings.yaml"
	breaksFileName   = "breaks.yaml"
	soundsFileName   = "sounds.yaml"
)

// Store reads and writes the application's yaml documents. Each document is
// serialized whole under a fixed logical name: settings, breaks list, sound
// library.
type Store struct {
	dir string
}

// Open resolves the per-user configuration directory for the app.
func Open(appName string) (*Store, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user config dir: %w", err)
	}
	return &Store{dir: filepath.Join(configDir, appName)}, nil
}

// At returns a store rooted at an explicit directory.
func At(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory holding the documents.
func (store *Store) Dir() string {
	return store.dir
}

func (store *Store) writeFile(fileName string, data []byte) error {
	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(store.dir, fileName), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fileName, err)
	}
	return nil
}
