package main

import (
	"fmt"
	"io"
	"log"
	"time"

	"shiftbell/internal/audio"
	"shiftbell/internal/core/alarm"
	"shiftbell/internal/core/engine"
	"shiftbell/internal/core/model"
	"shiftbell/internal/platform"
	"shiftbell/internal/sound"
	"shiftbell/internal/storage"
	"shiftbell/internal/store"
	"shiftbell/internal/ui/board"
	"shiftbell/internal/ui/overlay"
	"shiftbell/internal/ui/preferences"
	"shiftbell/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const appName = "ShiftBell"

func main() {
	var boardWindow *board.Window
	guard, err := platform.AcquireSingleInstance(appName, func() {
		fyne.Do(func() {
			if boardWindow != nil {
				boardWindow.Show()
			}
		})
	})
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	documents, err := storage.Open(appName)
	if err != nil {
		log.Printf("storage: %v, using working directory", err)
		documents = storage.At(".")
	}
	settings, err := documents.LoadSettings()
	if err != nil {
		log.Printf("load settings: %v", err)
	}
	windows, err := documents.LoadWindows()
	if err != nil {
		log.Printf("load breaks: %v", err)
	}
	sounds, err := documents.LoadSounds()
	if err != nil {
		log.Printf("load sounds: %v", err)
	}

	settingsStore := store.NewSettings(settings, documents.SaveSettings)
	windowStore := store.NewWindows(windows, documents.SaveWindows)
	library := sound.NewLibrary(sounds, documents.SaveSounds)

	var player alarm.Player
	if speakerPlayer, err := audio.NewPlayer(); err != nil {
		log.Printf("audio: %v, alarms will be silent", err)
		player = audio.Muted{}
	} else {
		player = speakerPlayer
	}

	core := engine.New(player, library, engine.Sources{
		Windows:  windowStore.List,
		Settings: settingsStore.Current,
	}, engine.Config{
		TickInterval:  time.Second,
		SafetyTimeout: time.Minute,
	})

	fyneApp := app.NewWithID("com.shiftbell.app")

	boardWindow = board.New(fyneApp, windowStore)
	overlayWindow := overlay.New(fyneApp, overlay.Config{Fullscreen: settings.AutoFullscreen})
	overlayWindow.SetOnDismiss(core.Alarm().Dismiss)

	var testPlayback alarm.Playback
	testSound := func(selector string, volume int) {
		if testPlayback != nil {
			testPlayback.Stop()
			testPlayback = nil
		}
		playback, err := player.Play(library.Resolve(selector), volume, nil)
		if err != nil {
			log.Printf("test sound: %v", err)
			return
		}
		testPlayback = playback
	}

	var prefsWindow *preferences.Window
	prefsWindow = preferences.New(fyneApp, settings, soundOptions(library), preferences.Callbacks{
		OnSave: func(updated model.Settings) {
			if warning := settingsStore.Update(updated); warning != "" {
				fyneApp.SendNotification(fyne.NewNotification(appName, "Could not save settings: "+warning))
			}
			overlayWindow.UpdateConfig(overlay.Config{Fullscreen: updated.AutoFullscreen})
		},
		OnTestSound: testSound,
		OnAddSound: func(parent fyne.Window) {
			showUploadDialog(parent, library, func() {
				prefsWindow.SetSoundOptions(soundOptions(library))
			})
		},
		OnRemoveSound: func(parent fyne.Window) {
			showRemoveDialog(parent, library, func() {
				prefsWindow.SetSoundOptions(soundOptions(library))
			})
		},
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShowBoard:    boardWindow.Show,
			OnPreferences:  prefsWindow.Show,
			OnDismissAlarm: core.Alarm().Dismiss,
			OnQuit: func() {
				core.Stop()
				fyneApp.Quit()
			},
		})
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	go watchStoreChanges(windowStore.Subscribe(4), fyneApp, boardWindow)

	events := core.Subscribe(8)
	go func() {
		for event := range events {
			handleEvent(event, fyneApp, boardWindow, overlayWindow, trayManager, settingsStore)
		}
	}()

	core.Start()
	defer core.Stop()

	boardWindow.Show()
	fyneApp.Run()
}

func handleEvent(event engine.Event, fyneApp fyne.App, boardWindow *board.Window, overlayWindow *overlay.Window, trayManager *tray.Manager, settingsStore *store.Settings) {
	switch event.Type {
	case engine.EventTick:
		fyne.Do(func() {
			boardWindow.SetTick(event.State, event.At)
			if trayManager != nil {
				trayManager.SetStatus(statusLine(event.State))
			}
		})
	case engine.EventModeChange:
		fyne.Do(func() {
			boardWindow.SetMode(event.Mode, event.State)
		})
	case engine.EventAlarmStart:
		session := overlay.SessionFor(*event.Window, event.Edge)
		if settingsStore.Current().Notify {
			fyneApp.SendNotification(fyne.NewNotification(session.Title, session.Subtitle))
		}
		fyne.Do(func() {
			overlayWindow.Show(session)
			if trayManager != nil {
				trayManager.SetAlarmActive(true)
			}
		})
	case engine.EventAlarmEnd:
		fyne.Do(func() {
			overlayWindow.Hide()
			if trayManager != nil {
				trayManager.SetAlarmActive(false)
			}
		})
	}
}

func watchStoreChanges(changes <-chan store.Change, fyneApp fyne.App, boardWindow *board.Window) {
	for change := range changes {
		warning := change.Warning
		fyne.Do(boardWindow.RefreshWindows)
		if warning != "" {
			fyneApp.SendNotification(fyne.NewNotification(appName, "Could not save breaks: "+warning))
		}
	}
}

func statusLine(state model.ScheduleState) string {
	switch {
	case state.Active != nil:
		return "on break until " + state.Active.EndClock()
	case state.Next != nil:
		return "break in " + formatRemaining(state.Countdown)
	default:
		return "no more breaks today"
	}
}

func formatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds/60)%60, seconds%60)
}

func soundOptions(library *sound.Library) []preferences.SoundOption {
	var options []preferences.SoundOption
	for _, spec := range sound.Builtins() {
		options = append(options, preferences.SoundOption{ID: spec.ID, Label: spec.Name})
	}
	for _, spec := range library.Uploads() {
		options = append(options, preferences.SoundOption{ID: spec.ID, Label: spec.Name + " (uploaded)"})
	}
	return options
}

func showUploadDialog(parent fyne.Window, library *sound.Library, onAdded func()) {
	dialog.ShowFileOpen(func(readCloser fyne.URIReadCloser, err error) {
		if err != nil || readCloser == nil {
			return
		}
		defer func() {
			_ = readCloser.Close()
		}()

		data, err := io.ReadAll(io.LimitReader(readCloser, sound.MaxUploadBytes+1))
		if err != nil {
			dialog.ShowError(fmt.Errorf("read sound file: %w", err), parent)
			return
		}
		if _, err := library.Add(readCloser.URI().Name(), data); err != nil {
			dialog.ShowError(err, parent)
			return
		}
		onAdded()
	}, parent)
}

func showRemoveDialog(parent fyne.Window, library *sound.Library, onRemoved func()) {
	uploads := library.Uploads()
	if len(uploads) == 0 {
		dialog.ShowInformation("Remove sound", "No uploaded sounds to remove.", parent)
		return
	}
	names := make([]string, 0, len(uploads))
	for _, spec := range uploads {
		names = append(names, spec.Name)
	}
	picker := widget.NewSelect(names, nil)
	picker.SetSelectedIndex(0)
	dialog.ShowCustomConfirm("Remove sound", "Remove", "Cancel", picker, func(confirmed bool) {
		if !confirmed || picker.SelectedIndex() < 0 {
			return
		}
		if err := library.Remove(uploads[picker.SelectedIndex()].ID); err != nil {
			dialog.ShowError(err, parent)
			return
		}
		onRemoved()
	}, parent)
}
