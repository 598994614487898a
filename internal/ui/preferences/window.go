package preferences

import (
	"fmt"

	"shiftbell/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// SoundOption is one selectable alarm sound.
type SoundOption struct {
	ID    string
	Label string
}

// Callbacks defines preferences action handlers. OnAddSound receives the
// preferences window so upload dialogs can attach to it.
type Callbacks struct {
	OnSave        func(model.Settings)
	OnTestSound   func(selector string, volume int)
	OnAddSound    func(parent fyne.Window)
	OnRemoveSound func(parent fyne.Window)
}

// Window handles the settings UI.
type Window struct {
	window      fyne.Window
	settings    model.Settings
	callbacks   Callbacks
	options     []SoundOption
	volume      *widget.Slider
	volumeValue *widget.Label
	startSelect *widget.Select
	endSelect   *widget.Select
	notify      *widget.Check
	fullscreen  *widget.Check
	dayStart    *widget.Entry
	dayEnd      *widget.Entry
}

// New creates a preferences window.
func New(app fyne.App, settings model.Settings, options []SoundOption, callbacks Callbacks) *Window {
	window := app.NewWindow("ShiftBell Settings")

	volume := widget.NewSlider(0, 100)
	volume.Step = 1
	volumeValue := widget.NewLabel("")

	startSelect := widget.NewSelect(nil, nil)
	endSelect := widget.NewSelect(nil, nil)

	notify := widget.NewCheck("Desktop notifications", nil)
	fullscreen := widget.NewCheck("Fullscreen alarm overlay", nil)

	dayStart := widget.NewEntry()
	dayEnd := widget.NewEntry()
	dayStart.SetPlaceHolder("08:00")
	dayEnd.SetPlaceHolder("17:00")

	prefs := &Window{
		window:      window,
		settings:    settings,
		callbacks:   callbacks,
		volume:      volume,
		volumeValue: volumeValue,
		startSelect: startSelect,
		endSelect:   endSelect,
		notify:      notify,
		fullscreen:  fullscreen,
		dayStart:    dayStart,
		dayEnd:      dayEnd,
	}
	prefs.SetSoundOptions(options)

	volume.OnChanged = func(value float64) {
		volumeValue.SetText(fmt.Sprintf("%d%%", int(value)))
	}

	testStart := widget.NewButton("Test start sound", func() {
		prefs.test(prefs.selectedSound(prefs.startSelect, prefs.settings.StartSound))
	})
	testEnd := widget.NewButton("Test end sound", func() {
		prefs.test(prefs.selectedSound(prefs.endSelect, prefs.settings.EndSound))
	})
	addSound := widget.NewButton("Add sound...", func() {
		if prefs.callbacks.OnAddSound != nil {
			prefs.callbacks.OnAddSound(prefs.window)
		}
	})
	removeSound := widget.NewButton("Remove sound...", func() {
		if prefs.callbacks.OnRemoveSound != nil {
			prefs.callbacks.OnRemoveSound(prefs.window)
		}
	})

	form := container.NewVBox(
		widget.NewLabelWithStyle("Alarm", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Volume"), volumeValue, volume),
		container.NewHBox(widget.NewLabel("Break start sound"), startSelect, testStart),
		container.NewHBox(widget.NewLabel("Break end sound"), endSelect, testEnd),
		container.NewHBox(addSound, removeSound),
		notify,
		fullscreen,
		widget.NewLabelWithStyle("Workday", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Day starts"), dayStart, widget.NewLabel("ends"), dayEnd),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(460, 440))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	prefs.volume.SetValue(float64(settings.Volume))
	prefs.volumeValue.SetText(fmt.Sprintf("%d%%", settings.Volume))
	prefs.startSelect.SetSelected(prefs.labelFor(settings.StartSound))
	prefs.endSelect.SetSelected(prefs.labelFor(settings.EndSound))
	prefs.notify.SetChecked(settings.Notify)
	prefs.fullscreen.SetChecked(settings.AutoFullscreen)
	prefs.dayStart.SetText(model.FormatClock(settings.Day.Start))
	prefs.dayEnd.SetText(model.FormatClock(settings.Day.End))
}

// SetSoundOptions replaces the selectable sound list, keeping selections.
func (prefs *Window) SetSoundOptions(options []SoundOption) {
	prefs.options = append([]SoundOption(nil), options...)
	labels := make([]string, 0, len(options))
	for _, option := range options {
		labels = append(labels, option.Label)
	}
	prefs.startSelect.Options = labels
	prefs.endSelect.Options = labels
	prefs.startSelect.SetSelected(prefs.labelFor(prefs.settings.StartSound))
	prefs.endSelect.SetSelected(prefs.labelFor(prefs.settings.EndSound))
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.Volume = int(prefs.volume.Value)
	settings.StartSound = prefs.selectedSound(prefs.startSelect, settings.StartSound)
	settings.EndSound = prefs.selectedSound(prefs.endSelect, settings.EndSound)
	settings.Notify = prefs.notify.Checked
	settings.AutoFullscreen = prefs.fullscreen.Checked

	dayStart, startErr := model.ParseClock(prefs.dayStart.Text)
	dayEnd, endErr := model.ParseClock(prefs.dayEnd.Text)
	if startErr == nil && endErr == nil && dayEnd > dayStart {
		settings.Day = model.DayBounds{Start: dayStart, End: dayEnd}
	}

	prefs.settings = settings
	if prefs.callbacks.OnSave != nil {
		prefs.callbacks.OnSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) test(selector string) {
	if prefs.callbacks.OnTestSound != nil {
		prefs.callbacks.OnTestSound(selector, int(prefs.volume.Value))
	}
}

func (prefs *Window) labelFor(soundID string) string {
	for _, option := range prefs.options {
		if option.ID == soundID {
			return option.Label
		}
	}
	if len(prefs.options) > 0 {
		return prefs.options[0].Label
	}
	return ""
}

func (prefs *Window) selectedSound(selectWidget *widget.Select, fallback string) string {
	for _, option := range prefs.options {
		if option.Label == selectWidget.Selected {
			return option.ID
		}
	}
	return fallback
}
