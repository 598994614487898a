package storage

import (
	"os"
	"path/filepath"
	"testing"

	"shiftbell/internal/core/model"
)

func TestSettingsRoundTrip(t *testing.T) {
	t.Parallel()

	store := At(t.TempDir())
	settings := model.DefaultSettings()
	settings.Volume = 55
	settings.StartSound = "melody"
	settings.Notify = false
	settings.Day = model.DayBounds{Start: 9 * 60, End: 18 * 60}

	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != settings {
		t.Fatalf("loaded = %+v, want %+v", loaded, settings)
	}
}

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	loaded, err := At(t.TempDir()).LoadSettings()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != model.DefaultSettings() {
		t.Fatalf("loaded = %+v, want defaults", loaded)
	}
}

func TestLoadSettingsIgnoresBadValues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	raw := "volume: 250\nstart_sound: bell\nend_sound: electronic\nnotify: true\nday_start: \"17:00\"\nday_end: \"08:00\"\n"
	if err := os.WriteFile(filepath.Join(dir, settingsFileName), []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loaded, err := At(dir).LoadSettings()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Volume != model.DefaultSettings().Volume {
		t.Fatalf("out-of-range volume must keep the default, got %d", loaded.Volume)
	}
	if loaded.Day != model.DefaultDayBounds() {
		t.Fatalf("inverted day bounds must keep the default, got %+v", loaded.Day)
	}
}

func TestWindowsRoundTrip(t *testing.T) {
	t.Parallel()

	store := At(t.TempDir())
	windows := []model.TimeWindow{
		{ID: "a", Name: "Morning Break", Start: 630, End: 660},
		{ID: "b", Name: "Lunch", Start: 720, End: 780},
	}
	if err := store.SaveWindows(windows); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.LoadWindows()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != len(windows) {
		t.Fatalf("loaded %d windows, want %d", len(loaded), len(windows))
	}
	for index := range windows {
		if loaded[index] != windows[index] {
			t.Fatalf("window %d = %+v, want %+v", index, loaded[index], windows[index])
		}
	}
}

func TestLoadWindowsMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	loaded, err := At(t.TempDir()).LoadWindows()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("default schedule has %d breaks, want 3", len(loaded))
	}
	if loaded[1].Name != "Lunch" || loaded[1].Start != 720 || loaded[1].End != 780 {
		t.Fatalf("default lunch = %+v", loaded[1])
	}
	for _, window := range loaded {
		if window.ID == "" {
			t.Fatalf("default window %q must get an id", window.Name)
		}
	}
}

func TestLoadWindowsSkipsInvalidEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	raw := `breaks:
  - id: ok
    name: Lunch
    start: "12:00"
    end: "13:00"
  - name: Backwards
    start: "14:00"
    end: "13:00"
  - name: Garbage
    start: noon
    end: "13:00"
`
	if err := os.WriteFile(filepath.Join(dir, breaksFileName), []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loaded, err := At(dir).LoadWindows()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "ok" {
		t.Fatalf("loaded = %+v, want only the valid entry", loaded)
	}
}

func TestSoundsRoundTrip(t *testing.T) {
	t.Parallel()

	store := At(t.TempDir())
	sounds := []model.SoundSpec{
		{ID: "u1", Name: "Chime", Origin: model.SoundUploaded, Data: []byte{1, 2, 3}},
		{ID: "bell", Name: "Bell", Origin: model.SoundBuiltin, File: "bell.wav"},
	}
	if err := store.SaveSounds(sounds); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.LoadSounds()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// Builtins are never written out.
	if len(loaded) != 1 {
		t.Fatalf("loaded %d sounds, want 1", len(loaded))
	}
	if loaded[0].ID != "u1" || loaded[0].Origin != model.SoundUploaded || len(loaded[0].Data) != 3 {
		t.Fatalf("loaded = %+v", loaded[0])
	}
}

func TestLoadSoundsMissingFileReturnsEmpty(t *testing.T) {
	t.Parallel()

	loaded, err := At(t.TempDir()).LoadSounds()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("loaded = %+v, want empty", loaded)
	}
}
