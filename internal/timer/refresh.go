package timer

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	apperrors "github.com/burnsba/tasktracker/internal/errors"
)

// DefaultRefreshInterval is the display refresh cadence.
const DefaultRefreshInterval = time.Second

// Refresher polls a timer's formatted elapsed time for display. It only reads
// the timer, so it needs no coordination with the auto-save tick.
type Refresher struct {
	clock    clockwork.Clock
	interval time.Duration

	mu      sync.Mutex
	running *schedule
}

func NewRefresher(clock clockwork.Clock, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{clock: clock, interval: interval}
}

// Start calls fn with t's formatted elapsed time now and on every tick until
// Stop. Starting a running Refresher is an InvariantViolation.
func (r *Refresher) Start(t *SessionTimer, fn func(elapsed string)) error {
	r.mu.Lock()
	if r.running != nil {
		r.mu.Unlock()
		return apperrors.InvariantViolation("display refresh already running")
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &schedule{cancel: cancel, done: make(chan struct{})}
	r.running = s
	ticker := r.clock.NewTicker(r.interval)
	r.mu.Unlock()

	// A session may stop before the first tick; show it at least once.
	fn(t.TotalElapsedFormatted())

	go func() {
		defer close(s.done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				if ctx.Err() != nil {
					return
				}
				fn(t.TotalElapsedFormatted())
			}
		}
	}()
	return nil
}

// Stop cancels the refresh loop and waits for it to exit. It is a no-op when
// nothing is running.
func (r *Refresher) Stop() {
	r.mu.Lock()
	s := r.running
	r.running = nil
	r.mu.Unlock()

	if s == nil {
		return
	}
	s.cancel()
	<-s.done
}

// Running reports whether the refresh loop is active.
func (r *Refresher) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running != nil
}
