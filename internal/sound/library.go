package sound

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"shiftbell/internal/core/model"

	"github.com/google/uuid"
)

// MaxUploadBytes caps uploaded sound files.
const MaxUploadBytes = 3 << 20

// DefaultSelector is the sound every unknown selector resolves to.
const DefaultSelector = "bell"

// ErrEmptySound indicates an upload with no audio data.
var ErrEmptySound = errors.New("sound data is empty")

// ErrSoundTooLarge indicates an upload above MaxUploadBytes.
var ErrSoundTooLarge = fmt.Errorf("sound exceeds %d bytes", MaxUploadBytes)

// ErrSoundNotFound indicates no uploaded sound exists with the given id.
var ErrSoundNotFound = errors.New("sound not found")

var builtins = []model.SoundSpec{
	{ID: "bell", Name: "Bell", Origin: model.SoundBuiltin, File: "bell.wav"},
	{ID: "electronic", Name: "Electronic", Origin: model.SoundBuiltin, File: "electronic.wav"},
	{ID: "warning", Name: "Warning Siren", Origin: model.SoundBuiltin, File: "warning.wav"},
	{ID: "melody", Name: "Melody", Origin: model.SoundBuiltin, File: "melody.wav"},
}

// Builtins returns the catalog of sounds shipped with the application.
func Builtins() []model.SoundSpec {
	return append([]model.SoundSpec(nil), builtins...)
}

// Library owns the user-uploaded sounds and resolves sound selectors.
type Library struct {
	mu      sync.Mutex
	uploads []model.SoundSpec
	persist func([]model.SoundSpec) error
}

// NewLibrary creates a library seeded with previously uploaded sounds.
func NewLibrary(initial []model.SoundSpec, persist func([]model.SoundSpec) error) *Library {
	return &Library{
		uploads: append([]model.SoundSpec(nil), initial...),
		persist: persist,
	}
}

// Uploads returns a copy of the uploaded sound list.
func (library *Library) Uploads() []model.SoundSpec {
	library.mu.Lock()
	defer library.mu.Unlock()
	return append([]model.SoundSpec(nil), library.uploads...)
}

// Add stores an uploaded sound under a fresh unique id.
func (library *Library) Add(name string, data []byte) (model.SoundSpec, error) {
	if len(data) == 0 {
		return model.SoundSpec{}, ErrEmptySound
	}
	if len(data) > MaxUploadBytes {
		return model.SoundSpec{}, ErrSoundTooLarge
	}
	spec := model.SoundSpec{
		ID:     uuid.NewString(),
		Name:   name,
		Origin: model.SoundUploaded,
		Data:   append([]byte(nil), data...),
	}

	library.mu.Lock()
	library.uploads = append(library.uploads, spec)
	library.persistLocked()
	library.mu.Unlock()
	return spec, nil
}

// Remove deletes an uploaded sound by id.
func (library *Library) Remove(id string) error {
	library.mu.Lock()
	defer library.mu.Unlock()
	for index, spec := range library.uploads {
		if spec.ID == id {
			library.uploads = append(library.uploads[:index], library.uploads[index+1:]...)
			library.persistLocked()
			return nil
		}
	}
	return ErrSoundNotFound
}

// Resolve maps a selector to a playable sound: builtin catalog first, then
// uploaded sounds, then the default. A missing or unknown selector is not an
// error.
func (library *Library) Resolve(selector string) model.SoundSpec {
	for _, spec := range builtins {
		if spec.ID == selector {
			return spec
		}
	}

	library.mu.Lock()
	for _, spec := range library.uploads {
		if spec.ID == selector {
			library.mu.Unlock()
			return spec
		}
	}
	library.mu.Unlock()

	for _, spec := range builtins {
		if spec.ID == DefaultSelector {
			return spec
		}
	}
	return builtins[0]
}

// persistLocked writes the upload list through. Like window persistence,
// a failed write is logged and the in-memory list stays authoritative.
func (library *Library) persistLocked() {
	if library.persist == nil {
		return
	}
	snapshot := append([]model.SoundSpec(nil), library.uploads...)
	if err := library.persist(snapshot); err != nil {
		log.Printf("sound: persist library: %v", err)
	}
}
