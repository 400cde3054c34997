package ui

import (
	"errors"
	"image/color"
	"log/slog"

	"github.com/burnsba/tasktracker/internal/appearance"
	"github.com/burnsba/tasktracker/internal/logging"
	"github.com/burnsba/tasktracker/internal/models"
	"github.com/burnsba/tasktracker/internal/store"
	"github.com/burnsba/tasktracker/internal/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	fynestorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const appTitle = "Task Time Tracker"

var errSessionRunning = errors.New("stop the running session before switching tasks")

// Dashboard is the overlay window content: task label, running timer and the
// controls for the one open task file.
type Dashboard struct {
	window     fyne.Window
	storage    *store.Storage
	refresher  *timer.Refresher
	logger     *slog.Logger
	defaultBg  color.Color
	dataFolder string

	active *timer.SessionTimer

	title   binding.String
	elapsed binding.String

	background *canvas.Rectangle
	titleText  *canvas.Text
	timerText  *canvas.Text

	newBtn   *widget.Button
	openBtn  *widget.Button
	startBtn *widget.Button
	stopBtn  *widget.Button
}

func NewDashboard(w fyne.Window, s *store.Storage, refresher *timer.Refresher, defaultBackground, dataFolder string) *Dashboard {
	logger := logging.WithComponent(nil, "dashboard")

	bg, err := appearance.ParseColor(defaultBackground)
	if err != nil {
		logger.Warn("Invalid default background color, using white", "color", defaultBackground, "error", err)
		bg = color.White
	}

	return &Dashboard{
		window:     w,
		storage:    s,
		refresher:  refresher,
		logger:     logger,
		defaultBg:  bg,
		dataFolder: dataFolder,
		title:      binding.NewString(),
		elapsed:    binding.NewString(),
	}
}

func (d *Dashboard) MakeUI() fyne.CanvasObject {
	d.background = canvas.NewRectangle(d.defaultBg)
	d.titleText = canvas.NewText("", color.Black)
	d.timerText = canvas.NewText("", color.Black)
	bindText(d.title, d.titleText)
	bindText(d.elapsed, d.timerText)

	d.newBtn = widget.NewButtonWithIcon("New", theme.DocumentCreateIcon(), d.showNewDialog)
	d.openBtn = widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), d.showOpenDialog)
	d.startBtn = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), d.StartTask)
	d.stopBtn = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), d.StopTask)

	d.applyAppearance()
	d.syncControls()

	overlay := container.NewWithoutLayout(d.titleText, d.timerText)
	controls := container.NewHBox(d.newBtn, d.openBtn, layout.NewSpacer(), d.startBtn, d.stopBtn)

	return container.NewStack(
		d.background,
		container.NewBorder(nil, controls, nil, nil, overlay),
	)
}

// bindText keeps a canvas text in step with a string binding.
func bindText(data binding.String, text *canvas.Text) {
	data.AddListener(binding.NewDataListener(func() {
		v, err := data.Get()
		if err != nil {
			return
		}
		text.Text = v
		text.Refresh()
	}))
}

func (d *Dashboard) timerOptions() []timer.Option {
	return []timer.Option{
		timer.WithStateListener(func(bool) {
			fyne.Do(d.syncControls)
		}),
	}
}

// ActiveTask returns the open task, or nil.
func (d *Dashboard) ActiveTask() *timer.SessionTimer {
	return d.active
}

// CreateTask writes a new task file at path and makes it the open task.
func (d *Dashboard) CreateTask(path string) error {
	if d.active != nil && d.active.IsActive() {
		return errSessionRunning
	}
	t, err := d.storage.CreateNew(path, d.timerOptions()...)
	if err != nil {
		return err
	}
	d.setActive(t)
	return nil
}

// OpenTask loads the task file at path and makes it the open task. On
// failure the current task stays open.
func (d *Dashboard) OpenTask(path string) error {
	if d.active != nil && d.active.IsActive() {
		return errSessionRunning
	}
	t, err := d.storage.Load(path, d.timerOptions()...)
	if err != nil {
		return err
	}
	d.setActive(t)
	return nil
}

func (d *Dashboard) setActive(t *timer.SessionTimer) {
	if d.active != nil {
		d.active.Close()
	}
	d.active = t
	d.logger.Info("Task opened", "path", t.SourceID(), "elapsed", t.TotalElapsed())
	d.applyAppearance()
	d.syncControls()
}

// StartTask opens a session on the current task and starts the display
// refresh.
func (d *Dashboard) StartTask() {
	if d.active == nil {
		return
	}
	started, err := d.active.Start()
	if err != nil {
		d.showError(err)
		return
	}
	if !started {
		return
	}
	d.syncControls()
	if err := d.refresher.Start(d.active, d.publishElapsed); err != nil {
		d.showError(err)
	}
}

// StopTask closes the running session, which forces a save.
func (d *Dashboard) StopTask() {
	if err := d.stopSession(); err != nil {
		d.showError(err)
	}
}

// ToggleTask starts the current task when idle and stops it when running.
func (d *Dashboard) ToggleTask() {
	if d.active == nil {
		return
	}
	if d.active.IsActive() {
		d.StopTask()
		return
	}
	d.StartTask()
}

func (d *Dashboard) stopSession() error {
	if d.active == nil {
		return nil
	}
	stopped, err := d.active.Stop()
	if stopped {
		d.refresher.Stop()
		d.elapsed.Set(d.active.TotalElapsedFormatted())
		d.syncControls()
	}
	return err
}

// Shutdown stops any running session and releases the open task.
func (d *Dashboard) Shutdown() error {
	err := d.stopSession()
	if d.active != nil {
		d.active.Close()
	}
	return err
}

// UpdateTask edits the open task's presentation fields and saves it.
func (d *Dashboard) UpdateTask(fn func(r *models.TaskTime)) error {
	if d.active == nil {
		return errors.New("no task is open")
	}
	d.active.Update(fn)
	d.applyAppearance()
	_, err := d.storage.Save(d.active, true)
	return err
}

func (d *Dashboard) publishElapsed(v string) {
	fyne.Do(func() {
		d.elapsed.Set(v)
	})
}

func (d *Dashboard) applyAppearance() {
	record := models.NewTaskTime()
	record.TaskName = ""
	if d.active != nil {
		record = d.active.Record()
	}

	o, err := appearance.FromRecord(record)
	if err != nil {
		d.logger.Warn("Invalid task appearance", "error", err)
	}
	if d.active == nil {
		o.Background = d.defaultBg
	}

	d.background.FillColor = o.Background
	d.background.Refresh()
	styleText(d.titleText, o.Label)
	styleText(d.timerText, o.Timer)

	label := appearance.LabelText(record)
	d.title.Set(label)
	if d.active != nil {
		d.elapsed.Set(d.active.TotalElapsedFormatted())
		d.window.SetTitle(appTitle + " - " + label)
	} else {
		d.elapsed.Set(timer.FormatDefault(0))
		d.window.SetTitle(appTitle)
	}
}

func styleText(t *canvas.Text, r appearance.Region) {
	t.Color = r.Color
	t.TextSize = float32(r.FontSize)
	t.TextStyle = fyne.TextStyle{Bold: r.Bold}
	t.Move(fyne.NewPos(float32(r.Margin.Left), float32(r.Margin.Top)))
	t.Resize(fyne.NewSize(float32(r.Width), float32(r.Height)))
	t.Refresh()
}

func (d *Dashboard) syncControls() {
	hasTask := d.active != nil
	running := hasTask && d.active.IsActive()

	setEnabled(d.startBtn, hasTask && !running)
	setEnabled(d.stopBtn, running)
	setEnabled(d.newBtn, !running)
	setEnabled(d.openBtn, !running)
}

func setEnabled(b *widget.Button, enabled bool) {
	if b == nil {
		return
	}
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

func (d *Dashboard) showNewDialog() {
	dlg := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			d.showError(err)
			return
		}
		if w == nil {
			return
		}
		path := w.URI().Path()
		w.Close()

		if err := d.CreateTask(path); err != nil {
			d.showError(err)
		}
	}, d.window)
	dlg.SetFilter(fynestorage.NewExtensionFileFilter([]string{store.FileExtension}))
	dlg.SetFileName("task" + store.FileExtension)
	d.setDialogLocation(dlg)
	dlg.Show()
}

func (d *Dashboard) showOpenDialog() {
	dlg := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			d.showError(err)
			return
		}
		if r == nil {
			return
		}
		path := r.URI().Path()
		r.Close()

		if err := d.OpenTask(path); err != nil {
			d.showError(err)
		}
	}, d.window)
	dlg.SetFilter(fynestorage.NewExtensionFileFilter([]string{store.FileExtension, ".yaml", ".yml"}))
	d.setDialogLocation(dlg)
	dlg.Show()
}

func (d *Dashboard) setDialogLocation(dlg *dialog.FileDialog) {
	if d.dataFolder == "" {
		return
	}
	lister, err := fynestorage.ListerForURI(fynestorage.NewFileURI(d.dataFolder))
	if err != nil {
		d.logger.Debug("Data folder not listable", "folder", d.dataFolder, "error", err)
		return
	}
	dlg.SetLocation(lister)
}

func (d *Dashboard) showError(err error) {
	d.logger.Error("Task operation failed", "error", err)
	dialog.ShowError(err, d.window)
}
