package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/burnsba/tasktracker/internal/timer"
	"github.com/burnsba/tasktracker/internal/ui"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
)

func runGUI(cmd *cobra.Command, args []string) error {
	os.Setenv("FYNE_SCALE", "auto")

	a := app.NewWithID("com.burnsba.tasktracker")
	icon := theme.HistoryIcon()
	a.SetIcon(icon)

	w := a.NewWindow("Task Time Tracker")
	w.Resize(fyne.NewSize(400, 300))

	refresher := timer.NewRefresher(env.clock, env.cfg.RefreshInterval)
	dashboard := ui.NewDashboard(w, env.storage, refresher, env.cfg.BackgroundColor, env.cfg.DataFolder)
	settings := ui.NewSettings(w, env.manager, dashboard)

	tabs := container.NewAppTabs(
		container.NewTabItem("Tracker", dashboard.MakeUI()),
		container.NewTabItem("Settings", settings.MakeUI()),
	)
	w.SetContent(tabs)

	if len(args) == 1 {
		if err := dashboard.OpenTask(args[0]); err != nil {
			dialog.ShowError(err, w)
		}
	}

	ui.SetupTray(a, w, icon, dashboard)

	w.ShowAndRun()
	return dashboard.Shutdown()
}
