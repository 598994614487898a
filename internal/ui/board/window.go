package board

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"shiftbell/internal/core/model"
	"shiftbell/internal/store"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var (
	workingColor = color.NRGBA{R: 22, G: 163, B: 74, A: 255}
	breakColor   = color.NRGBA{R: 220, G: 38, B: 38, A: 255}
)

// Window is the main status board: live clock, status badge, next event,
// countdown, day progress and the break window editor.
type Window struct {
	window        fyne.Window
	windows       *store.Windows
	clockLabel    *canvas.Text
	dateLabel     *widget.Label
	statusBadge   *canvas.Text
	nextName      *widget.Label
	nextTime      *widget.Label
	countdown     *canvas.Text
	progress      *widget.ProgressBar
	progressLabel *widget.Label
	breakRows     *fyne.Container
}

// New creates the board window bound to the window store.
func New(app fyne.App, windows *store.Windows) *Window {
	window := app.NewWindow("ShiftBell")

	clockLabel := canvas.NewText("--:--:--", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	clockLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	clockLabel.TextSize = 52
	clockLabel.Alignment = fyne.TextAlignCenter

	dateLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})

	statusBadge := canvas.NewText("WORKING TIME", workingColor)
	statusBadge.TextStyle = fyne.TextStyle{Bold: true}
	statusBadge.TextSize = 22
	statusBadge.Alignment = fyne.TextAlignCenter

	nextName := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	nextTime := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})

	countdown := canvas.NewText("--:--:--", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	countdown.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	countdown.TextSize = 40
	countdown.Alignment = fyne.TextAlignCenter

	progress := widget.NewProgressBar()
	progressLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})

	board := &Window{
		window:        window,
		windows:       windows,
		clockLabel:    clockLabel,
		dateLabel:     dateLabel,
		statusBadge:   statusBadge,
		nextName:      nextName,
		nextTime:      nextTime,
		countdown:     countdown,
		progress:      progress,
		progressLabel: progressLabel,
		breakRows:     container.NewVBox(),
	}

	addButton := widget.NewButton("Add break", board.showAddDialog)
	breaksHeader := container.NewHBox(
		widget.NewLabelWithStyle("Breaks", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
		addButton,
	)

	content := container.NewVBox(
		clockLabel,
		dateLabel,
		statusBadge,
		widget.NewSeparator(),
		nextName,
		nextTime,
		countdown,
		progress,
		progressLabel,
		widget.NewSeparator(),
		breaksHeader,
		board.breakRows,
	)

	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(520, 640))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	board.RefreshWindows()
	return board
}

// Show displays the board window.
func (board *Window) Show() {
	board.window.Show()
	board.window.RequestFocus()
}

// SetTick updates the continuously-changing widgets: clock, countdown and
// day progress. Called once per second.
func (board *Window) SetTick(state model.ScheduleState, now time.Time) {
	board.clockLabel.Text = now.Format("15:04:05")
	board.clockLabel.Refresh()
	board.dateLabel.SetText(now.Format("Monday, 2 January 2006"))

	switch {
	case state.Active != nil:
		board.nextName.SetText("Time remaining")
		board.nextTime.SetText("Ends at " + state.Active.EndClock())
		board.countdown.Text = formatCountdown(state.Countdown)
	case state.Next != nil:
		board.nextName.SetText(state.Next.Name)
		board.nextTime.SetText(state.Next.StartClock() + " - " + state.Next.EndClock())
		board.countdown.Text = formatCountdown(state.Countdown)
	default:
		board.nextName.SetText("End of workday")
		board.nextTime.SetText("-")
		board.countdown.Text = "--:--:--"
	}
	board.countdown.Refresh()

	board.progress.SetValue(state.DayProgress / 100)
	board.progressLabel.SetText(fmt.Sprintf("%d%% of the workday", int(state.DayProgress)))
}

// SetMode updates the status badge. Called only on mode transitions.
func (board *Window) SetMode(mode model.Mode, state model.ScheduleState) {
	if mode == model.ModeOnBreak && state.Active != nil {
		board.statusBadge.Text = "ON BREAK: " + state.Active.Name
		board.statusBadge.Color = breakColor
	} else {
		board.statusBadge.Text = "WORKING TIME"
		board.statusBadge.Color = workingColor
	}
	board.statusBadge.Refresh()
}

// RefreshWindows rebuilds the break list from the store.
func (board *Window) RefreshWindows() {
	board.breakRows.RemoveAll()
	for _, window := range board.windows.List() {
		board.breakRows.Add(board.breakRow(window))
	}
	board.breakRows.Refresh()
}

func (board *Window) breakRow(window model.TimeWindow) fyne.CanvasObject {
	editButton := widget.NewButton("Edit", func() {
		board.showEditDialog(window)
	})
	deleteButton := widget.NewButton("Delete", func() {
		board.confirmDelete(window)
	})
	return container.NewHBox(
		widget.NewLabelWithStyle(window.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel(window.StartClock()+" - "+window.EndClock()),
		layout.NewSpacer(),
		editButton,
		deleteButton,
	)
}

func (board *Window) showAddDialog() {
	name, start, end := widget.NewEntry(), widget.NewEntry(), widget.NewEntry()
	start.SetPlaceHolder("10:30")
	end.SetPlaceHolder("11:00")
	items := []*widget.FormItem{
		widget.NewFormItem("Name", name),
		widget.NewFormItem("Start", start),
		widget.NewFormItem("End", end),
	}
	dialog.ShowForm("Add break", "Add", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		if _, err := board.windows.Add(name.Text, start.Text, end.Text); err != nil {
			dialog.ShowError(describeError(err), board.window)
		}
	}, board.window)
}

func (board *Window) showEditDialog(window model.TimeWindow) {
	name, start, end := widget.NewEntry(), widget.NewEntry(), widget.NewEntry()
	name.SetText(window.Name)
	start.SetText(window.StartClock())
	end.SetText(window.EndClock())
	items := []*widget.FormItem{
		widget.NewFormItem("Name", name),
		widget.NewFormItem("Start", start),
		widget.NewFormItem("End", end),
	}
	dialog.ShowForm("Edit break", "Save", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		patch := store.WindowPatch{Name: &name.Text, Start: &start.Text, End: &end.Text}
		if _, err := board.windows.Update(window.ID, patch); err != nil {
			dialog.ShowError(describeError(err), board.window)
		}
	}, board.window)
}

func (board *Window) confirmDelete(window model.TimeWindow) {
	dialog.ShowConfirm("Delete break", "Delete \""+window.Name+"\"?", func(confirmed bool) {
		if !confirmed {
			return
		}
		if err := board.windows.Delete(window.ID); err != nil {
			dialog.ShowError(describeError(err), board.window)
		}
	}, board.window)
}

func describeError(err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidClock):
		return errors.New("times must use HH:MM")
	case errors.Is(err, store.ErrEndNotAfterStart):
		return errors.New("the end time must be after the start time")
	default:
		return err
	}
}

func formatCountdown(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds/60)%60, seconds%60)
}
