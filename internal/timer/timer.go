package timer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	apperrors "github.com/burnsba/tasktracker/internal/errors"
	"github.com/burnsba/tasktracker/internal/logging"
	"github.com/burnsba/tasktracker/internal/models"
)

// DefaultSaveInterval is the auto-save cadence while a session is active.
const DefaultSaveInterval = 60 * time.Second

// Saver persists a timer. force bypasses the minimum save interval.
type Saver interface {
	Save(t *SessionTimer, force bool) (bool, error)
}

// Snapshot is a consistent copy of the state a Saver needs.
type Snapshot struct {
	SourceID    string
	Record      models.TaskTime
	LastSavedAt time.Time
}

// Option configures a SessionTimer.
type Option func(*SessionTimer)

// WithClock sets the clock used for session arithmetic and the auto-save tick.
func WithClock(c clockwork.Clock) Option {
	return func(t *SessionTimer) { t.clock = c }
}

// WithSaveInterval sets the auto-save tick interval.
func WithSaveInterval(d time.Duration) Option {
	return func(t *SessionTimer) {
		if d > 0 {
			t.saveInterval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *SessionTimer) { t.logger = l }
}

// WithStateListener registers fn to be called after every Start or Stop
// transition with the new active state.
func WithStateListener(fn func(active bool)) Option {
	return func(t *SessionTimer) { t.onState = fn }
}

type schedule struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// SessionTimer tracks elapsed active time for one task across sessions.
//
// Total elapsed is priorElapsed plus, while active, the time since the
// session started. The persisted record never carries the active state, so a
// restored timer is always inactive.
type SessionTimer struct {
	clock        clockwork.Clock
	saver        Saver
	saveInterval time.Duration
	logger       *slog.Logger
	onState      func(active bool)

	mu           sync.Mutex
	sourceID     string
	record       models.TaskTime
	layout       Layout
	active       bool
	sessionStart time.Time
	sessionID    string
	priorElapsed time.Duration
	lastSavedAt  time.Time
	autosave     *schedule
}

// New returns an inactive timer bound to sourceID, restoring prior elapsed
// time from the record's whole seconds.
func New(sourceID string, record models.TaskTime, saver Saver, opts ...Option) *SessionTimer {
	t := &SessionTimer{
		clock:        clockwork.NewRealClock(),
		saver:        saver,
		saveInterval: DefaultSaveInterval,
		logger:       slog.Default(),
		sourceID:     sourceID,
		record:       record,
		priorElapsed: time.Duration(record.PriorElapsedSeconds) * time.Second,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = logging.WithComponent(t.logger, "timer").With("source_id", sourceID)
	t.layout = t.parseLayout(record.TimeFormat)
	return t
}

func (t *SessionTimer) parseLayout(format string) Layout {
	if format == "" {
		return Layout{}
	}
	l, err := ParseLayout(format)
	if err != nil {
		t.logger.Warn("Invalid time format, using default", "format", format, "error", err)
		return Layout{}
	}
	return l
}

// Start opens a session. It returns false without error when a session is
// already active. Starting while a previous auto-save schedule is still
// winding down is a caller error and fails with InvariantViolation.
func (t *SessionTimer) Start() (bool, error) {
	t.mu.Lock()
	if t.active {
		t.mu.Unlock()
		return false, nil
	}
	if t.autosave != nil {
		t.mu.Unlock()
		return false, apperrors.InvariantViolation("auto-save schedule already running").
			WithContext("source_id", t.sourceID)
	}

	t.active = true
	t.sessionStart = t.clock.Now()
	t.sessionID = uuid.NewString()
	t.lastSavedAt = time.Time{}

	ctx, cancel := context.WithCancel(context.Background())
	s := &schedule{cancel: cancel, done: make(chan struct{})}
	t.autosave = s
	ticker := t.clock.NewTicker(t.saveInterval)
	logger := t.logger.With("session_id", t.sessionID)
	t.mu.Unlock()

	go t.runAutosave(ctx, ticker, s.done, logger)

	logger.Info("Session started")
	t.notify(true)
	return true, nil
}

// Stop closes the active session, folds it into prior elapsed time, cancels
// the auto-save tick and forces a final save. It returns false without error
// when no session is active. A failed final save is returned alongside true.
func (t *SessionTimer) Stop() (bool, error) {
	t.mu.Lock()
	if !t.active {
		t.mu.Unlock()
		return false, nil
	}
	t.priorElapsed += t.sessionElapsed(t.clock.Now())
	t.active = false
	t.sessionStart = time.Time{}
	s := t.autosave
	logger := t.logger.With("session_id", t.sessionID, "prior_elapsed", t.priorElapsed)
	t.mu.Unlock()

	t.stopSchedule(s)
	logger.Info("Session stopped")
	t.notify(false)

	if _, err := t.saver.Save(t, true); err != nil {
		return true, fmt.Errorf("failed to save stopped session: %w", err)
	}
	return true, nil
}

// Close cancels the auto-save schedule without changing the session state.
// After Close returns no auto-save runs for this timer.
func (t *SessionTimer) Close() {
	t.mu.Lock()
	s := t.autosave
	t.mu.Unlock()
	t.stopSchedule(s)
}

func (t *SessionTimer) stopSchedule(s *schedule) {
	if s == nil {
		return
	}
	s.cancel()
	<-s.done

	t.mu.Lock()
	if t.autosave == s {
		t.autosave = nil
	}
	t.mu.Unlock()
}

func (t *SessionTimer) runAutosave(ctx context.Context, ticker clockwork.Ticker, done chan struct{}, logger *slog.Logger) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if ctx.Err() != nil {
				return
			}
			saved, err := t.saver.Save(t, false)
			if err != nil {
				logger.Warn("Auto-save failed", "error", err)
				continue
			}
			if saved {
				logger.Debug("Auto-saved")
			}
		}
	}
}

func (t *SessionTimer) notify(active bool) {
	if t.onState != nil {
		t.onState(active)
	}
}

// sessionElapsed must be called with mu held. A clock that steps backwards
// contributes nothing rather than a negative span.
func (t *SessionTimer) sessionElapsed(now time.Time) time.Duration {
	if !t.active {
		return 0
	}
	d := now.Sub(t.sessionStart)
	if d < 0 {
		return 0
	}
	return d
}

// TotalElapsed returns prior elapsed time plus the open session, if any.
func (t *SessionTimer) TotalElapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.priorElapsed + t.sessionElapsed(t.clock.Now())
}

// TotalElapsedFormatted renders TotalElapsed with the record's time format,
// or with FormatDefault when the format is empty or invalid.
func (t *SessionTimer) TotalElapsedFormatted() string {
	t.mu.Lock()
	layout := t.layout
	total := t.priorElapsed + t.sessionElapsed(t.clock.Now())
	t.mu.Unlock()

	if layout.IsZero() {
		return FormatDefault(total)
	}
	return layout.Format(total)
}

// IsActive reports whether a session is open.
func (t *SessionTimer) IsActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// SessionStart returns the start of the open session.
func (t *SessionTimer) SessionStart() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionStart, t.active
}

// PriorElapsed returns the time accumulated by closed sessions.
func (t *SessionTimer) PriorElapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.priorElapsed
}

// SourceID returns the identity of the backing record.
func (t *SessionTimer) SourceID() string {
	return t.sourceID
}

// Record returns a copy of the persisted fields with PriorElapsedSeconds
// set from the current prior elapsed time.
func (t *SessionTimer) Record() models.TaskTime {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.recordLocked()
}

func (t *SessionTimer) recordLocked() models.TaskTime {
	r := t.record
	r.PriorElapsedSeconds = int64(t.priorElapsed / time.Second)
	return r
}

// Update edits the presentation fields of the record. Elapsed time is owned
// by the timer and changes to PriorElapsedSeconds are discarded.
func (t *SessionTimer) Update(fn func(r *models.TaskTime)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r := t.record
	fn(&r)
	r.PriorElapsedSeconds = t.record.PriorElapsedSeconds
	if r.TimeFormat != t.record.TimeFormat {
		t.layout = t.parseLayout(r.TimeFormat)
	}
	t.record = r
}

// Snapshot returns the state needed to persist the timer.
func (t *SessionTimer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		SourceID:    t.sourceID,
		Record:      t.recordLocked(),
		LastSavedAt: t.lastSavedAt,
	}
}

// MarkSaved records a successful write at the given time.
func (t *SessionTimer) MarkSaved(at time.Time) {
	t.mu.Lock()
	t.lastSavedAt = at
	t.mu.Unlock()
}
