package registry

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is how often a Tracker polls by default.
const DefaultInterval = 100 * time.Millisecond

// Completer is anything a Tracker can poll.
type Completer interface {
	IsCompleted() bool
}

type tracked struct {
	req    Completer
	onDone func()
}

// Tracker polls pending requests on a fixed interval and runs each
// request's callback once it completes. Callbacks run on the goroutine
// calling Poll or Wait.
type Tracker struct {
	interval time.Duration

	mu      sync.Mutex
	pending []tracked
}

// NewTracker returns a Tracker polling every interval (DefaultInterval when
// interval is not positive).
func NewTracker(interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Tracker{interval: interval}
}

// Track registers req. onDone runs exactly once, after req completes.
func (t *Tracker) Track(req Completer, onDone func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = append(t.pending, tracked{req: req, onDone: onDone})
}

// Pending returns the number of requests still being tracked.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// Poll checks every pending request once, detaching and notifying the
// completed ones. It returns the number still pending.
func (t *Tracker) Poll() int {
	t.mu.Lock()
	var done []tracked
	kept := t.pending[:0]
	for _, tr := range t.pending {
		if tr.req.IsCompleted() {
			done = append(done, tr)
		} else {
			kept = append(kept, tr)
		}
	}
	t.pending = kept
	remaining := len(kept)
	t.mu.Unlock()

	for _, tr := range done {
		if tr.onDone != nil {
			tr.onDone()
		}
	}
	return remaining
}

// Wait polls until nothing is pending or ctx is done. Requests still
// pending when ctx ends stay tracked; they are never cancelled.
func (t *Tracker) Wait(ctx context.Context) error {
	if t.Poll() == 0 {
		return nil
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if t.Poll() == 0 {
				return nil
			}
		}
	}
}
