package event

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Channel delivers values of type T to its subscribers synchronously.
// The zero value is ready to use.
type Channel[T any] struct {
	mu   sync.Mutex
	subs []*subscription[T]
	seq  uint64
}

// Subscribe registers a handler and returns its subscription.
// It panics if handler is nil.
func (c *Channel[T]) Subscribe(handler Handler[T], opts ...SubscriptionOption[T]) Subscription {
	if handler == nil {
		panic(ErrNilHandler)
	}

	config := SubscriptionConfig[T]{Priority: PriorityNormal}
	for _, opt := range opts {
		opt(&config)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	sub := &subscription[T]{
		id:      uuid.NewString(),
		seq:     c.seq,
		handler: handler,
		config:  config,
		owner:   c,
	}
	c.subs = append(c.subs, sub)
	sort.SliceStable(c.subs, func(i, j int) bool {
		if c.subs[i].config.Priority != c.subs[j].config.Priority {
			return c.subs[i].config.Priority < c.subs[j].config.Priority
		}
		return c.subs[i].seq < c.subs[j].seq
	})
	return sub
}

// Emit calls every active handler with v, in priority order.
// Handlers subscribed during Emit are not called for this value.
func (c *Channel[T]) Emit(v T) {
	c.mu.Lock()
	if len(c.subs) == 0 {
		c.mu.Unlock()
		return
	}
	snapshot := make([]*subscription[T], len(c.subs))
	copy(snapshot, c.subs)
	c.mu.Unlock()

	for _, sub := range snapshot {
		if !sub.shouldDeliver(v) {
			continue
		}
		sub.handler(v)
	}
}

// Len returns the number of active subscriptions.
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// Clear cancels every subscription.
func (c *Channel[T]) Clear() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, s := range subs {
		s.done.Store(true)
	}
}

// remove drops s from the subscriber list.
func (c *Channel[T]) remove(s *subscription[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, sub := range c.subs {
		if sub == s {
			c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
			return
		}
	}
}
