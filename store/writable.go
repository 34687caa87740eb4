// Package store provides observable value cells.
//
// A Writable holds a single value and notifies its subscribers whenever the
// value is replaced. Cells are independent of each other; there is no way to
// update several cells atomically.
package store

import "sync"

// Readable is a read-only view of an observable cell.
type Readable[T any] interface {
	// Get the current value.
	Get() T

	// Register a callback that is invoked with the current value right away
	// and again after every change. The returned function cancels the
	// subscription.
	Subscribe(fn func(T)) (unsubscribe func())
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Writable is an observable cell holding a value of type T.
type Writable[T any] struct {
	mu     sync.Mutex
	value  T
	subs   []subscriber[T]
	nextID uint64
}

// Create a new cell with an initial value.
func New[T any](initial T) *Writable[T] {
	return &Writable[T]{value: initial}
}

func (w *Writable[T]) Get() T {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.value
}

// Replace the value and notify subscribers in subscription order.
func (w *Writable[T]) Set(v T) {
	w.mu.Lock()
	w.value = v
	subs := w.subscribers()
	w.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
}

// Replace the value with the result of fn applied to the current value.
func (w *Writable[T]) Update(fn func(T) T) {
	w.mu.Lock()
	v := fn(w.value)
	w.value = v
	subs := w.subscribers()
	w.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
}

func (w *Writable[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	w.mu.Lock()
	w.nextID++
	id := w.nextID
	w.subs = append(w.subs, subscriber[T]{id: id, fn: fn})
	v := w.value
	w.mu.Unlock()

	fn(v)

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			for i, s := range w.subs {
				if s.id == id {
					w.subs = append(w.subs[:i:i], w.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Get the number of active subscriptions.
func (w *Writable[T]) Subscribers() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs)
}

// Must be called with the lock held.
func (w *Writable[T]) subscribers() []subscriber[T] {
	out := make([]subscriber[T], len(w.subs))
	copy(out, w.subs)
	return out
}
