package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowBoard    func()
	OnPreferences  func()
	OnDismissAlarm func()
	OnQuit         func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	dismissItem *fyne.MenuItem
	callbacks   Callbacks
	alarmActive bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.dismissItem = fyne.NewMenuItem("Dismiss alarm", func() {
		if manager.callbacks.OnDismissAlarm != nil {
			manager.callbacks.OnDismissAlarm()
		}
	})
	manager.dismissItem.Disabled = true

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

// SetAlarmActive toggles the dismiss menu item.
func (manager *Manager) SetAlarmActive(active bool) {
	manager.alarmActive = active
	manager.dismissItem.Disabled = !active
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("ShiftBell",
		manager.statusItem,
		fyne.NewMenuItem("Open board", func() {
			if manager.callbacks.OnShowBoard != nil {
				manager.callbacks.OnShowBoard()
			}
		}),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		manager.dismissItem,
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
