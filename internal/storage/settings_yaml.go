package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"shiftbell/internal/core/model"

	"gopkg.in/yaml.v3"
)

type yamlSettings struct {
	Volume         int    `yaml:"volume"`
	StartSound     string `yaml:"start_sound"`
	EndSound       string `yaml:"end_sound"`
	Notify         bool   `yaml:"notify"`
	AutoFullscreen bool   `yaml:"auto_fullscreen"`
	DayStart       string `yaml:"day_start"`
	DayEnd         string `yaml:"day_end"`
}

// LoadSettings reads user preferences from YAML.
// If the document does not exist, default settings are returned.
func (store *Store) LoadSettings() (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(filepath.Join(store.dir, settingsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func (store *Store) SaveSettings(settings model.Settings) error {
	fileData := yamlSettings{
		Volume:         settings.Volume,
		StartSound:     settings.StartSound,
		EndSound:       settings.EndSound,
		Notify:         settings.Notify,
		AutoFullscreen: settings.AutoFullscreen,
		DayStart:       model.FormatClock(settings.Day.Start),
		DayEnd:         model.FormatClock(settings.Day.End),
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}
	return store.writeFile(settingsFileName, serialized)
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if fileData.Volume >= 0 && fileData.Volume <= 100 {
		settings.Volume = fileData.Volume
	}
	if fileData.StartSound != "" {
		settings.StartSound = fileData.StartSound
	}
	if fileData.EndSound != "" {
		settings.EndSound = fileData.EndSound
	}
	settings.Notify = fileData.Notify
	settings.AutoFullscreen = fileData.AutoFullscreen

	dayStart, startErr := model.ParseClock(fileData.DayStart)
	dayEnd, endErr := model.ParseClock(fileData.DayEnd)
	if startErr == nil && endErr == nil && dayEnd > dayStart {
		settings.Day = model.DayBounds{Start: dayStart, End: dayEnd}
	}
}
