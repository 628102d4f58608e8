package quiz

import (
	"sync"
	"time"
)

// Clock abstracts time for the engine so tests can drive deadlines and
// timeouts without sleeping.
type Clock interface {
	Now() time.Time
	// AfterFunc schedules f after d and returns a handle to stop it.
	AfterFunc(d time.Duration, f func()) TimerHandle
}

// TimerHandle is a cancellable scheduled callback.
type TimerHandle interface {
	// Stop cancels the callback if it has not fired yet.
	Stop() bool
}

// RealClock is the production Clock backed by the time package.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) AfterFunc(d time.Duration, f func()) TimerHandle {
	return time.AfterFunc(d, f)
}

// questionTimer is the per-question countdown for timer-driven modes.
// One timer is live at a time per session, and it is cancelled exactly
// once: on answer, on completion, or on explicit reset.
type questionTimer struct {
	handle   TimerHandle
	deadline time.Time
	total    time.Duration
	once     sync.Once
}

// cancel stops the underlying timer. Safe to call more than once; only
// the first call reaches the handle.
func (t *questionTimer) cancel() {
	if t == nil {
		return
	}
	t.once.Do(func() {
		if t.handle != nil {
			t.handle.Stop()
		}
	})
}

// remainingRatio returns the fraction of the budget left at now, in [0,1].
func (t *questionTimer) remainingRatio(now time.Time) float64 {
	if t == nil || t.total <= 0 {
		return 0
	}
	remaining := t.deadline.Sub(now)
	if remaining <= 0 {
		return 0
	}
	ratio := float64(remaining) / float64(t.total)
	if ratio > 1 {
		return 1
	}
	return ratio
}
