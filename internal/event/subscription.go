package event

import "sync/atomic"

// SubscriptionConfig contains configuration for a subscription.
type SubscriptionConfig[T any] struct {
	// Priority determines execution order (lower values execute first).
	Priority Priority

	// Filter is an optional predicate to filter events.
	Filter FilterFunc[T]
}

// SubscriptionOption configures a subscription.
type SubscriptionOption[T any] func(*SubscriptionConfig[T])

// WithPriority sets the subscription priority.
func WithPriority[T any](p Priority) SubscriptionOption[T] {
	return func(c *SubscriptionConfig[T]) {
		c.Priority = p
	}
}

// WithFilter sets a filter predicate.
func WithFilter[T any](f FilterFunc[T]) SubscriptionOption[T] {
	return func(c *SubscriptionConfig[T]) {
		c.Filter = f
	}
}

// Subscription is the handle returned by Channel.Subscribe.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Active reports whether the subscription still receives events.
	Active() bool

	// Cancel removes the subscription from its channel.
	// Safe to call multiple times.
	Cancel()
}

// subscription is the internal implementation of Subscription.
type subscription[T any] struct {
	id      string
	seq     uint64
	handler Handler[T]
	config  SubscriptionConfig[T]
	owner   *Channel[T]
	done    atomic.Bool
}

func (s *subscription[T]) ID() string {
	return s.id
}

func (s *subscription[T]) Active() bool {
	return !s.done.Load()
}

func (s *subscription[T]) Cancel() {
	if s.done.Swap(true) {
		return
	}
	s.owner.remove(s)
}

// shouldDeliver returns true if the event should be delivered.
func (s *subscription[T]) shouldDeliver(v T) bool {
	if s.done.Load() {
		return false
	}
	if s.config.Filter != nil && !s.config.Filter(v) {
		return false
	}
	return true
}
