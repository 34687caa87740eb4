package frame

import (
	"context"
	"sync"
	"time"
)

// Delta describes the frame being processed.
type Delta struct {
	// Sequential frame number starting at 1.
	Frame uint64

	// Time elapsed since the previous frame.
	Elapsed time.Duration
}

// A Callback is invoked once per rendered frame.
type Callback func(Delta)

type entry struct {
	id     uint64
	fn     Callback
	active bool
}

// Loop dispatches per-frame callbacks. Callbacks run on the goroutine that
// calls Tick, in subscription order.
type Loop struct {
	mu      sync.Mutex
	entries []*entry
	nextID  uint64
	frame   uint64
}

func NewLoop() *Loop {
	return &Loop{}
}

// Register a per-frame callback. The returned function removes it; a callback
// removed while a frame is being dispatched will not run later in that frame.
func (l *Loop) Subscribe(fn Callback) (unsubscribe func()) {
	l.mu.Lock()
	l.nextID++
	e := &entry{id: l.nextID, fn: fn, active: true}
	l.entries = append(l.entries, e)
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if !e.active {
			return
		}
		e.active = false
		for i, other := range l.entries {
			if other == e {
				l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
				break
			}
		}
	}
}

// Get the number of frames dispatched so far.
func (l *Loop) Frame() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frame
}

// Get the number of registered callbacks.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Dispatch a single frame to all registered callbacks.
func (l *Loop) Tick(elapsed time.Duration) Delta {
	l.mu.Lock()
	l.frame++
	delta := Delta{Frame: l.frame, Elapsed: elapsed}
	entries := make([]*entry, len(l.entries))
	copy(entries, l.entries)
	l.mu.Unlock()

	for _, e := range entries {
		l.mu.Lock()
		active := e.active
		l.mu.Unlock()
		if active {
			e.fn(delta)
		}
	}
	return delta
}

// Dispatch frames at the given interval until ctx is cancelled. The optional
// after callback runs once each frame has been dispatched.
func (l *Loop) Run(ctx context.Context, interval time.Duration, after func(Delta)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			delta := l.Tick(now.Sub(last))
			last = now
			if after != nil {
				after(delta)
			}
		}
	}
}
