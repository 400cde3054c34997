package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// SetupTray adds the tray menu on desktop drivers. Closing the window hides
// it there; the session keeps running until Stop or Quit.
func SetupTray(a fyne.App, w fyne.Window, icon fyne.Resource, d *Dashboard) {
	quit := func() {
		if err := d.Shutdown(); err != nil {
			slog.Error("Failed to stop session on quit", "error", err)
		}
		a.Quit()
	}

	desk, ok := a.(desktop.App)
	if !ok {
		w.SetCloseIntercept(quit)
		return
	}

	m := fyne.NewMenu("Task Time Tracker",
		fyne.NewMenuItem("Show", func() {
			w.Show()
		}),
		fyne.NewMenuItem("Start/Stop", func() {
			d.ToggleTask()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", quit),
	)
	desk.SetSystemTrayMenu(m)
	if icon != nil {
		desk.SetSystemTrayIcon(icon)
	}

	w.SetCloseIntercept(func() {
		w.Hide()
	})
}
