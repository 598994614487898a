package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"shiftbell/internal/core/model"

	"gopkg.in/yaml.v3"
)

type yamlSound struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Data []byte `yaml:"data"`
}

type yamlSoundLibrary struct {
	Sounds []yamlSound `yaml:"sounds"`
}

// LoadSounds reads the uploaded sound library from YAML.
// If the document does not exist, an empty library is returned.
func (store *Store) LoadSounds() ([]model.SoundSpec, error) {
	rawData, err := os.ReadFile(filepath.Join(store.dir, soundsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sounds file: %w", err)
	}

	var fileData yamlSoundLibrary
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return nil, fmt.Errorf("parse sounds yaml: %w", err)
	}

	sounds := make([]model.SoundSpec, 0, len(fileData.Sounds))
	for _, entry := range fileData.Sounds {
		if entry.ID == "" || len(entry.Data) == 0 {
			continue
		}
		sounds = append(sounds, model.SoundSpec{
			ID:     entry.ID,
			Name:   entry.Name,
			Origin: model.SoundUploaded,
			Data:   entry.Data,
		})
	}
	return sounds, nil
}

// SaveSounds writes the uploaded sound library to YAML.
func (store *Store) SaveSounds(sounds []model.SoundSpec) error {
	fileData := yamlSoundLibrary{Sounds: make([]yamlSound, 0, len(sounds))}
	for _, spec := range sounds {
		if spec.Origin != model.SoundUploaded {
			continue
		}
		fileData.Sounds = append(fileData.Sounds, yamlSound{
			ID:   spec.ID,
			Name: spec.Name,
			Data: spec.Data,
		})
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal sounds yaml: %w", err)
	}
	return store.writeFile(soundsFileName, serialized)
}
