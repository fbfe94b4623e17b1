// Package store holds the client's observable state: the authentication
// session and the recipe collection. Each store publishes immutable snapshots
// to its subscribers.
package store

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Listener receives state snapshots. It must treat them as read-only.
type Listener[T any] func(T)

type subscriber[T any] struct {
	id     uint64
	fn     Listener[T]
	active atomic.Bool
}

// pending is a queued value and the subscribers registered when it was set.
type pending[T any] struct {
	value T
	subs  []*subscriber[T]
}

// Value is an observable value.
//
// Subscribers are called synchronously, in subscription order, with every
// new value. A value set from inside a listener (or by another goroutine
// while a round is being delivered) is queued and delivered once the
// current round completes, so every subscriber sees values in the order the
// mutations were made. A queued value goes only to subscribers that existed
// when it was set; later subscribers already got a newer value as replay.
type Value[T any] struct {
	mu          sync.Mutex
	current     T
	subs        []*subscriber[T]
	nextID      uint64
	queue       []pending[T]
	dispatching bool
}

// NewValue returns a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Subscribe registers fn and immediately calls it with the current value.
// The returned function removes the subscription; it is safe to call more
// than once.
func (v *Value[T]) Subscribe(fn Listener[T]) (unsubscribe func()) {
	v.mu.Lock()
	v.nextID++
	s := &subscriber[T]{id: v.nextID, fn: fn}
	s.active.Store(true)
	v.subs = append(v.subs, s)
	current := v.current
	v.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() { v.remove(s) })
	}
}

// Set replaces the value and notifies subscribers.
func (v *Value[T]) Set(x T) {
	v.mu.Lock()
	v.current = x
	v.enqueueLocked(x)
}

// Update replaces the value with fn(current) and notifies subscribers. fn
// runs under the Value's lock and must not call back into it.
func (v *Value[T]) Update(fn func(T) T) {
	v.mu.Lock()
	v.current = fn(v.current)
	v.enqueueLocked(v.current)
}

// SubscriberCount reports the number of live subscriptions.
func (v *Value[T]) SubscriberCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

// enqueueLocked is called with v.mu held and releases it.
func (v *Value[T]) enqueueLocked(x T) {
	v.queue = append(v.queue, pending[T]{value: x, subs: slices.Clone(v.subs)})
	if v.dispatching {
		v.mu.Unlock()
		return
	}

	v.dispatching = true
	for len(v.queue) > 0 {
		next := v.queue[0]
		v.queue = v.queue[1:]
		v.mu.Unlock()

		for _, s := range next.subs {
			if s.active.Load() {
				s.fn(next.value)
			}
		}

		v.mu.Lock()
	}
	v.queue = nil
	v.dispatching = false
	v.mu.Unlock()
}

func (v *Value[T]) remove(s *subscriber[T]) {
	s.active.Store(false)
	v.mu.Lock()
	defer v.mu.Unlock()
	v.subs = slices.DeleteFunc(v.subs, func(x *subscriber[T]) bool { return x.id == s.id })
}
