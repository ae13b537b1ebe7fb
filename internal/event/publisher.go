package event

import (
	"log/slog"
	"reflect"
	"sync"
)

// Publisher owns the ordered subscriber list for one aggregate family and
// performs synchronous fan-out on the caller's goroutine. Each subscriber
// invocation is isolated: a returned error or a panic is logged and the
// remaining subscribers are still invoked. Publish iterates an immutable
// snapshot of the list, so a concurrent Register or Unregister never races
// with an in-flight fan-out.
type Publisher[S any, E any] struct {
	name     string
	dispatch func(S, E) error
	logger   *slog.Logger

	mu   sync.Mutex
	subs []S
}

// Aliases for the three publishers the services instantiate.
type (
	BookingPublisher   = Publisher[BookingSubscriber, BookingEvent]
	QuotePublisher     = Publisher[QuoteSubscriber, QuoteEvent]
	InventoryPublisher = Publisher[InventorySubscriber, InventoryThresholdEvent]
)

// NewBookingPublisher creates the publisher for booking events.
func NewBookingPublisher(logger *slog.Logger) *BookingPublisher {
	return newPublisher("booking", BookingSubscriber.HandleBooking, logger)
}

// NewQuotePublisher creates the publisher for quote events.
func NewQuotePublisher(logger *slog.Logger) *QuotePublisher {
	return newPublisher("quote", QuoteSubscriber.HandleQuote, logger)
}

// NewInventoryPublisher creates the publisher for inventory threshold events.
func NewInventoryPublisher(logger *slog.Logger) *InventoryPublisher {
	return newPublisher("inventory", InventorySubscriber.HandleInventory, logger)
}

func newPublisher[S any, E any](name string, dispatch func(S, E) error, logger *slog.Logger) *Publisher[S, E] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher[S, E]{name: name, dispatch: dispatch, logger: logger}
}

// Register adds sub to the end of the subscriber list. Registering a
// subscriber that is already present is a no-op. Subscribers whose dynamic
// type is not comparable (func- or map-based values) cannot be deduplicated
// or unregistered; every Register adds one subscription.
func (p *Publisher[S, E]) Register(sub S) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.indexOf(sub) >= 0 {
		return
	}
	p.subs = append(p.subs, sub)
}

// Unregister removes sub from the subscriber list. Removing a subscriber
// that is not present is a no-op.
func (p *Publisher[S, E]) Unregister(sub S) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.indexOf(sub)
	if i < 0 {
		return
	}
	next := make([]S, 0, len(p.subs)-1)
	next = append(next, p.subs[:i]...)
	next = append(next, p.subs[i+1:]...)
	p.subs = next
}

// Publish invokes every currently registered subscriber exactly once, in
// registration order. It returns after all subscribers have been attempted;
// failures are logged, never propagated to the caller.
func (p *Publisher[S, E]) Publish(e E) {
	p.mu.Lock()
	subs := make([]S, len(p.subs))
	copy(subs, p.subs)
	p.mu.Unlock()

	for _, sub := range subs {
		p.notify(sub, e)
	}
}

// notify runs one subscriber invocation with panic recovery so a misbehaving
// subscriber cannot abort the fan-out.
func (p *Publisher[S, E]) notify(sub S, e E) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("event subscriber panicked",
				"publisher", p.name, "panic", r)
		}
	}()
	if err := p.dispatch(sub, e); err != nil {
		p.logger.Error("event subscriber failed",
			"publisher", p.name, "error", err)
	}
}

// indexOf returns the position of sub in the list, or -1. Callers must hold
// p.mu. Subscribers are compared by interface identity, so the same value
// registered twice counts as one subscription. Uncomparable subscribers are
// never found; comparing them against an equal dynamic type would panic.
func (p *Publisher[S, E]) indexOf(sub S) int {
	if t := reflect.TypeOf(any(sub)); t == nil || !t.Comparable() {
		return -1
	}
	for i, existing := range p.subs {
		if any(existing) == any(sub) {
			return i
		}
	}
	return -1
}
