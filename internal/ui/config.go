package ui

import (
	"errors"

	"github.com/burnsba/tasktracker/internal/appearance"
	"github.com/burnsba/tasktracker/internal/config"
	"github.com/burnsba/tasktracker/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Settings edits the application config and the open task's presentation.
type Settings struct {
	window    fyne.Window
	manager   *config.Manager
	dashboard *Dashboard
}

func NewSettings(w fyne.Window, m *config.Manager, d *Dashboard) *Settings {
	return &Settings{window: w, manager: m, dashboard: d}
}

func (s *Settings) MakeUI() fyne.CanvasObject {
	return container.NewVBox(
		widget.NewLabelWithStyle("Application", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		s.appForm(),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Open task", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		s.taskForm(),
	)
}

func (s *Settings) appForm() fyne.CanvasObject {
	cfg := s.manager.Config()

	bgEntry := widget.NewEntry()
	bgEntry.SetText(cfg.BackgroundColor)
	bgEntry.Validator = validateColor

	folderEntry := widget.NewEntry()
	folderEntry.SetText(cfg.DataFolder)

	browseBtn := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				dialog.ShowError(err, s.window)
				return
			}
			if uri == nil {
				return
			}
			folderEntry.SetText(uri.Path())
		}, s.window).Show()
	})

	form := widget.NewForm(
		widget.NewFormItem("Background color", bgEntry),
		widget.NewFormItem("Data folder", container.NewBorder(nil, nil, nil, browseBtn, folderEntry)),
	)
	form.SubmitText = "Save configuration"
	form.OnSubmit = func() {
		if err := s.manager.SetBackgroundColor(bgEntry.Text); err != nil {
			dialog.ShowError(err, s.window)
			return
		}
		if err := s.manager.SetDataFolder(folderEntry.Text); err != nil {
			dialog.ShowError(err, s.window)
			return
		}
		dialog.ShowInformation("Saved", "Configuration saved. Changes apply on next start.", s.window)
	}
	return form
}

func (s *Settings) taskForm() fyne.CanvasObject {
	name := widget.NewEntry()
	display := widget.NewEntry()
	format := widget.NewEntry()
	background := widget.NewEntry()
	background.Validator = validateColor
	textColor := widget.NewEntry()
	textColor.Validator = validateColor
	timerColor := widget.NewEntry()
	timerColor.Validator = validateColor

	load := func() {
		t := s.dashboard.ActiveTask()
		if t == nil {
			dialog.ShowInformation("No task", "Open or create a task first.", s.window)
			return
		}
		r := t.Record()
		name.SetText(r.TaskName)
		display.SetText(r.TaskTextDisplay)
		format.SetText(r.TimeFormat)
		background.SetText(r.WindowBackgroundColorName)
		textColor.SetText(r.TextColorName)
		timerColor.SetText(r.TimerColorName)
	}

	form := widget.NewForm(
		widget.NewFormItem("Name", name),
		widget.NewFormItem("Display text", display),
		widget.NewFormItem("Time format", format),
		widget.NewFormItem("Background color", background),
		widget.NewFormItem("Text color", textColor),
		widget.NewFormItem("Timer color", timerColor),
	)
	form.SubmitText = "Apply to task"
	form.OnSubmit = func() {
		err := s.dashboard.UpdateTask(func(r *models.TaskTime) {
			r.TaskName = name.Text
			r.TaskTextDisplay = display.Text
			r.TimeFormat = format.Text
			r.WindowBackgroundColorName = background.Text
			r.TextColorName = textColor.Text
			r.TimerColorName = timerColor.Text
		})
		if err != nil {
			dialog.ShowError(err, s.window)
		}
	}

	reload := widget.NewButtonWithIcon("Load from open task", theme.ViewRefreshIcon(), load)
	return container.NewVBox(reload, form)
}

func validateColor(s string) error {
	if s == "" {
		return errors.New("color is required")
	}
	_, err := appearance.ParseColor(s)
	return err
}
