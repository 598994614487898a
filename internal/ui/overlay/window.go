package overlay

import (
	"context"
	"fmt"
	"image/color"

	"shiftbell/internal/core/model"
	"shiftbell/internal/ui/flash"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Config defines overlay visuals.
type Config struct {
	Fullscreen bool
}

// Session defines the strings shown for one alarm.
type Session struct {
	Title    string
	Subtitle string
}

// SessionFor resolves the overlay strings for a window edge.
func SessionFor(window model.TimeWindow, edge model.Edge) Session {
	if edge == model.EdgeStart {
		return Session{
			Title:    "Time for " + window.Name,
			Subtitle: fmt.Sprintf("Break %s - %s", window.StartClock(), window.EndClock()),
		}
	}
	return Session{
		Title:    "Break is over!",
		Subtitle: "Back to work",
	}
}

var (
	baseColor  = color.NRGBA{R: 101, G: 18, B: 18, A: 255}
	pulseColor = color.NRGBA{R: 185, G: 28, B: 28, A: 255}
)

const (
	overlayWidth  = float32(640)
	overlayHeight = float32(360)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Window manages the alarm overlay UI.
type Window struct {
	app           fyne.App
	window        fyne.Window
	config        Config
	background    *canvas.Rectangle
	titleLabel    *canvas.Text
	subtitleLabel *canvas.Text
	dismissButton *widget.Button
	flasher       *flash.Engine
	cancelCtx     context.CancelFunc
	onDismiss     func()
}

// New creates the alarm overlay window, hidden until an alarm starts.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow("ShiftBell")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(baseColor)

	titleLabel := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 34

	subtitleLabel := canvas.NewText("", color.NRGBA{R: 254, G: 226, B: 226, A: 255})
	subtitleLabel.Alignment = fyne.TextAlignCenter
	subtitleLabel.TextSize = 18

	dismissButton := widget.NewButton("Dismiss", nil)

	content := container.NewCenter(container.NewVBox(
		titleLabel,
		subtitleLabel,
		widget.NewLabel(""),
		container.NewCenter(dismissButton),
	))
	window.SetContent(container.NewMax(background, content))

	overlay := &Window{
		app:           app,
		window:        window,
		config:        config,
		background:    background,
		titleLabel:    titleLabel,
		subtitleLabel: subtitleLabel,
		dismissButton: dismissButton,
	}
	overlay.flasher = flash.New(flash.DefaultConfig(), overlay.setPulse)

	dismissButton.OnTapped = func() {
		if overlay.onDismiss != nil {
			overlay.onDismiss()
		}
	}
	overlay.applyWindowMode()
	return overlay
}

// SetOnDismiss sets the manual dismissal handler.
func (overlay *Window) SetOnDismiss(handler func()) {
	overlay.onDismiss = handler
}

// Show starts a new overlay session with a pulsing background.
func (overlay *Window) Show(session Session) {
	overlay.stopFlasher()
	ctx, cancel := context.WithCancel(context.Background())
	overlay.cancelCtx = cancel

	overlay.titleLabel.Text = session.Title
	overlay.titleLabel.Refresh()
	overlay.subtitleLabel.Text = session.Subtitle
	overlay.subtitleLabel.Refresh()

	overlay.applyWindowMode()
	overlay.window.Show()
	overlay.window.RequestFocus()
	overlay.flasher.Start(ctx)
}

// Hide closes the overlay and stops the pulse.
func (overlay *Window) Hide() {
	overlay.stopFlasher()
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(false)
	}
	overlay.window.Hide()
}

// UpdateConfig updates overlay visuals.
func (overlay *Window) UpdateConfig(config Config) {
	overlay.config = config
	overlay.applyWindowMode()
}

func (overlay *Window) setPulse(active bool) {
	fyne.Do(func() {
		if active {
			overlay.background.FillColor = pulseColor
		} else {
			overlay.background.FillColor = baseColor
		}
		canvas.Refresh(overlay.background)
	})
}

func (overlay *Window) stopFlasher() {
	overlay.flasher.Stop()
	if overlay.cancelCtx != nil {
		overlay.cancelCtx()
		overlay.cancelCtx = nil
	}
}

func (overlay *Window) applyWindowMode() {
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(true)
		return
	}
	overlay.window.SetFullScreen(false)
	overlay.window.Resize(fyne.NewSize(overlayWidth, overlayHeight))
	overlay.window.CenterOnScreen()
}
