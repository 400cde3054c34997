package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burnsba/tasktracker/internal/appearance"
	apperrors "github.com/burnsba/tasktracker/internal/errors"
	"github.com/burnsba/tasktracker/internal/models"
	"github.com/burnsba/tasktracker/internal/store"
	"github.com/burnsba/tasktracker/internal/timer"
)

func newTestDashboard(t *testing.T) (*Dashboard, *clockwork.FakeClock, *store.Storage) {
	t.Helper()
	test.NewApp()
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)

	clock := clockwork.NewFakeClock()
	s := store.NewStorage(store.WithClock(clock))
	d := NewDashboard(w, s, timer.NewRefresher(clock, time.Second), "LightGray", t.TempDir())
	w.SetContent(d.MakeUI())
	t.Cleanup(func() { _ = d.Shutdown() })
	return d, clock, s
}

func bound(t *testing.T, d *Dashboard) (string, string) {
	t.Helper()
	title, err := d.title.Get()
	require.NoError(t, err)
	elapsed, err := d.elapsed.Get()
	require.NoError(t, err)
	return title, elapsed
}

func TestDashboard_NoTask(t *testing.T) {
	d, _, _ := newTestDashboard(t)

	title, elapsed := bound(t, d)
	assert.Empty(t, title)
	assert.Equal(t, "00:00:00", elapsed)
	assert.Equal(t, "#D3D3D3", appearance.Hex(d.background.FillColor))

	assert.True(t, d.startBtn.Disabled())
	assert.True(t, d.stopBtn.Disabled())
	assert.False(t, d.newBtn.Disabled())
	assert.False(t, d.openBtn.Disabled())
}

func TestDashboard_CreateStartStop(t *testing.T) {
	d, clock, s := newTestDashboard(t)
	path := filepath.Join(t.TempDir(), "task.ttt")

	require.NoError(t, d.CreateTask(path))
	title, elapsed := bound(t, d)
	assert.Equal(t, "new task", title)
	assert.Equal(t, "00d 00:00:00", elapsed)
	assert.False(t, d.startBtn.Disabled())
	assert.True(t, d.stopBtn.Disabled())

	d.StartTask()
	assert.True(t, d.ActiveTask().IsActive())
	assert.True(t, d.refresher.Running())
	assert.True(t, d.startBtn.Disabled())
	assert.False(t, d.stopBtn.Disabled())
	assert.True(t, d.newBtn.Disabled())
	assert.True(t, d.openBtn.Disabled())

	clock.Advance(5 * time.Second)
	d.StopTask()

	assert.False(t, d.refresher.Running())
	_, elapsed = bound(t, d)
	assert.Equal(t, "00d 00:00:05", elapsed)
	assert.False(t, d.startBtn.Disabled())

	reloaded, err := s.Load(path)
	require.NoError(t, err)
	defer reloaded.Close()
	assert.Equal(t, int64(5), reloaded.Record().PriorElapsedSeconds)
}

func TestDashboard_ToggleTask(t *testing.T) {
	d, _, _ := newTestDashboard(t)
	require.NoError(t, d.CreateTask(filepath.Join(t.TempDir(), "task.ttt")))

	d.ToggleTask()
	assert.True(t, d.ActiveTask().IsActive())
	d.ToggleTask()
	assert.False(t, d.ActiveTask().IsActive())
}

func TestDashboard_SwitchWhileRunning(t *testing.T) {
	d, _, _ := newTestDashboard(t)
	dir := t.TempDir()
	require.NoError(t, d.CreateTask(filepath.Join(dir, "a.ttt")))
	d.StartTask()

	err := d.OpenTask(filepath.Join(dir, "a.ttt"))
	assert.ErrorIs(t, err, errSessionRunning)
	err = d.CreateTask(filepath.Join(dir, "b.ttt"))
	assert.ErrorIs(t, err, errSessionRunning)
	assert.NoFileExists(t, filepath.Join(dir, "b.ttt"))
}

func TestDashboard_FailedOpenKeepsTask(t *testing.T) {
	d, _, _ := newTestDashboard(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "good.ttt")
	require.NoError(t, d.CreateTask(good))

	bad := filepath.Join(dir, "bad.ttt")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))

	err := d.OpenTask(bad)
	assert.ErrorIs(t, err, apperrors.ErrCorruptData)
	assert.Equal(t, good, d.ActiveTask().SourceID())

	err = d.OpenTask(filepath.Join(dir, "missing.ttt"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, good, d.ActiveTask().SourceID())
}

func TestDashboard_UpdateTask(t *testing.T) {
	d, _, s := newTestDashboard(t)
	path := filepath.Join(t.TempDir(), "task.ttt")

	assert.Error(t, d.UpdateTask(func(r *models.TaskTime) {}), "no task open")

	require.NoError(t, d.CreateTask(path))
	require.NoError(t, d.UpdateTask(func(r *models.TaskTime) {
		r.TaskName = "Billing"
		r.WindowBackgroundColorName = "Navy"
		r.TimeFormat = `hh\:mm`
	}))

	title, elapsed := bound(t, d)
	assert.Equal(t, "Billing", title)
	assert.Equal(t, "00:00", elapsed)
	assert.Equal(t, "#000080", appearance.Hex(d.background.FillColor))

	reloaded, err := s.Load(path)
	require.NoError(t, err)
	defer reloaded.Close()
	assert.Equal(t, "Billing", reloaded.Record().TaskName)
}
