// Package reactive provides the subscriber list shared by the dashboard stores.
package reactive

import "sync"

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Observers is an ordered set of callbacks that receive state snapshots.
// Deliveries never overlap: while one goroutine is delivering, later
// snapshots are queued and the newest of them is delivered next.
// The zero value is ready to use.
type Observers[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber[T]
	closed bool

	draining   bool
	pending    T
	hasPending bool
	version    uint64
}

// Subscribe registers fn and returns a function that removes it.
// Subscribing after Close is a no-op.
func (o *Observers[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || fn == nil {
		return func() {}
	}

	o.nextID++
	id := o.nextID
	o.subs = append(o.subs, subscriber[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { o.remove(id) })
	}
}

func (o *Observers[T]) remove(id int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, s := range o.subs {
		if s.id == id {
			o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
			return
		}
	}
}

// Publish calls every subscriber with value, in subscription order.
// A value still pending when a newer one arrives is replaced by it.
func (o *Observers[T]) Publish(value T) {
	o.PublishVersion(0, value)
}

// PublishVersion is Publish for snapshots stamped by the publishing store.
// A version at or below the newest one seen is dropped, so the last snapshot
// subscribers receive is the last one committed. Version zero is never dropped.
//
// Callbacks run outside the lock so they may read, or write to, the store
// that published. A snapshot published from inside a callback is delivered
// after the current round.
func (o *Observers[T]) PublishVersion(version uint64, value T) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	if version != 0 {
		if version <= o.version {
			o.mu.Unlock()
			return
		}
		o.version = version
	}
	o.pending, o.hasPending = value, true
	if o.draining {
		o.mu.Unlock()
		return
	}
	o.draining = true
	o.mu.Unlock()

	o.drain()
}

func (o *Observers[T]) drain() {
	defer func() {
		if r := recover(); r != nil {
			o.mu.Lock()
			o.resetPending()
			o.mu.Unlock()
			panic(r)
		}
	}()

	for {
		o.mu.Lock()
		if !o.hasPending || o.closed {
			o.resetPending()
			o.mu.Unlock()
			return
		}
		value := o.pending
		var zero T
		o.pending, o.hasPending = zero, false
		subs := make([]subscriber[T], len(o.subs))
		copy(subs, o.subs)
		o.mu.Unlock()

		for _, s := range subs {
			s.fn(value)
		}
	}
}

// resetPending must be called with mu held.
func (o *Observers[T]) resetPending() {
	var zero T
	o.pending, o.hasPending = zero, false
	o.draining = false
}

// Len returns the number of active subscribers.
func (o *Observers[T]) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.subs)
}

// Close drops every subscriber and rejects new ones.
func (o *Observers[T]) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.subs = nil
	o.closed = true
	var zero T
	o.pending, o.hasPending = zero, false
}
