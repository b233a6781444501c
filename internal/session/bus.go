package session

import "sync"

// Subscription is a scoped handle on the event stream. Unsubscribe is safe to
// call more than once.
type Subscription struct {
	once   sync.Once
	cancel func()
}

func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// bus fans events out to subscribers on a single ordered stream. Delivery is
// synchronous, and an event published from inside a handler (a compensating
// sign-out, for instance) is queued and dispatched after the current event
// finishes, never interleaved with it.
type bus struct {
	mu          sync.Mutex
	subs        map[int]func(Event)
	nextID      int
	queue       []Event
	dispatching bool
}

func newBus() *bus {
	return &bus{subs: make(map[int]func(Event))}
}

func (b *bus) subscribe(h func(Event)) *Subscription {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = h
	b.mu.Unlock()
	return &Subscription{cancel: func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}}
}

func (b *bus) publish(e Event) {
	b.mu.Lock()
	b.queue = append(b.queue, e)
	if b.dispatching {
		b.mu.Unlock()
		return
	}
	b.dispatching = true
	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue = b.queue[1:]
		handlers := make([]func(Event), 0, len(b.subs))
		for _, h := range b.subs {
			handlers = append(handlers, h)
		}
		b.mu.Unlock()
		for _, h := range handlers {
			h(next)
		}
		b.mu.Lock()
	}
	b.dispatching = false
	b.mu.Unlock()
}
