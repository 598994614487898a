package storage

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"shiftbell/internal/core/model"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type yamlWindow struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type yamlBreaks struct {
	Breaks []yamlWindow `yaml:"breaks"`
}

// LoadWindows reads the break window list from YAML.
// If the document does not exist, the default break set is returned.
func (store *Store) LoadWindows() ([]model.TimeWindow, error) {
	rawData, err := os.ReadFile(filepath.Join(store.dir, breaksFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultWindows(), nil
		}
		return DefaultWindows(), fmt.Errorf("read breaks file: %w", err)
	}

	var fileData yamlBreaks
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return DefaultWindows(), fmt.Errorf("parse breaks yaml: %w", err)
	}

	windows := make([]model.TimeWindow, 0, len(fileData.Breaks))
	for _, entry := range fileData.Breaks {
		start, err := model.ParseClock(entry.Start)
		if err != nil {
			log.Printf("storage: skip break %q: %v", entry.Name, err)
			continue
		}
		end, err := model.ParseClock(entry.End)
		if err != nil || end <= start {
			log.Printf("storage: skip break %q: bad range %s-%s", entry.Name, entry.Start, entry.End)
			continue
		}
		id := entry.ID
		if id == "" {
			id = uuid.NewString()
		}
		windows = append(windows, model.TimeWindow{ID: id, Name: entry.Name, Start: start, End: end})
	}
	return windows, nil
}

// SaveWindows writes the break window list to YAML.
func (store *Store) SaveWindows(windows []model.TimeWindow) error {
	fileData := yamlBreaks{Breaks: make([]yamlWindow, 0, len(windows))}
	for _, window := range windows {
		fileData.Breaks = append(fileData.Breaks, yamlWindow{
			ID:    window.ID,
			Name:  window.Name,
			Start: window.StartClock(),
			End:   window.EndClock(),
		})
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal breaks yaml: %w", err)
	}
	return store.writeFile(breaksFileName, serialized)
}

// DefaultWindows returns the factory break schedule used on first run.
func DefaultWindows() []model.TimeWindow {
	return []model.TimeWindow{
		{ID: uuid.NewString(), Name: "Morning Break", Start: 10*60 + 30, End: 11 * 60},
		{ID: uuid.NewString(), Name: "Lunch", Start: 12 * 60, End: 13 * 60},
		{ID: uuid.NewString(), Name: "Afternoon Break", Start: 14*60 + 30, End: 15 * 60},
	}
}
