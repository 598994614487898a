package sound

import (
	"bytes"
	"errors"
	"testing"

	"shiftbell/internal/core/model"
)

func TestResolveBuiltin(t *testing.T) {
	t.Parallel()

	library := NewLibrary(nil, nil)
	spec := library.Resolve("electronic")
	if spec.ID != "electronic" || spec.Origin != model.SoundBuiltin {
		t.Fatalf("resolved %+v, want the electronic builtin", spec)
	}
}

func TestResolveUploadedBeatsDefault(t *testing.T) {
	t.Parallel()

	library := NewLibrary([]model.SoundSpec{
		{ID: "custom", Name: "Custom", Origin: model.SoundUploaded, Data: []byte{1}},
	}, nil)
	if spec := library.Resolve("custom"); spec.ID != "custom" {
		t.Fatalf("resolved %+v, want the uploaded sound", spec)
	}
}

func TestResolveUnknownFallsBackToDefault(t *testing.T) {
	t.Parallel()

	library := NewLibrary(nil, nil)
	for _, selector := range []string{"", "missing"} {
		if spec := library.Resolve(selector); spec.ID != DefaultSelector {
			t.Fatalf("Resolve(%q) = %+v, want the default", selector, spec)
		}
	}
}

func TestAddEnforcesSizeCap(t *testing.T) {
	t.Parallel()

	library := NewLibrary(nil, nil)
	if _, err := library.Add("empty", nil); !errors.Is(err, ErrEmptySound) {
		t.Fatalf("want ErrEmptySound, got %v", err)
	}
	if _, err := library.Add("huge", make([]byte, MaxUploadBytes+1)); !errors.Is(err, ErrSoundTooLarge) {
		t.Fatalf("want ErrSoundTooLarge, got %v", err)
	}

	spec, err := library.Add("ok", bytes.Repeat([]byte{7}, 16))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if spec.ID == "" || spec.Origin != model.SoundUploaded {
		t.Fatalf("added spec = %+v", spec)
	}
	if got := len(library.Uploads()); got != 1 {
		t.Fatalf("uploads = %d, want 1", got)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	library := NewLibrary(nil, nil)
	spec, err := library.Add("ok", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := library.Remove(spec.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := library.Remove(spec.ID); !errors.Is(err, ErrSoundNotFound) {
		t.Fatalf("second remove: want ErrSoundNotFound, got %v", err)
	}
}

func TestBuiltinsCatalog(t *testing.T) {
	t.Parallel()

	catalog := Builtins()
	if len(catalog) == 0 {
		t.Fatalf("builtin catalog must not be empty")
	}
	seen := map[string]bool{}
	for _, spec := range catalog {
		if spec.Origin != model.SoundBuiltin || spec.File == "" {
			t.Fatalf("builtin %+v must carry an embedded file name", spec)
		}
		if seen[spec.ID] {
			t.Fatalf("duplicate builtin id %q", spec.ID)
		}
		seen[spec.ID] = true
	}
	if !seen[DefaultSelector] {
		t.Fatalf("default selector %q must be a builtin", DefaultSelector)
	}
}
