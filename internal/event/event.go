// Package event defines the domain events emitted by the booking, quote and
// inventory services, the subscriber interface for each aggregate family, and
// a Publisher that fans events out synchronously to registered subscribers.
package event

import "time"

// BookingStatus enumerates the lifecycle states of a booking.
type BookingStatus string

const (
	BookingWaiting   BookingStatus = "Waiting"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
	BookingCompleted BookingStatus = "Completed"
)

// BookingAction tags what happened to a booking when its event is published.
type BookingAction string

const (
	BookingActionCreated         BookingAction = "created"
	BookingActionCancelled       BookingAction = "cancelled"
	BookingActionStatusChanged   BookingAction = "status_changed"
	BookingActionQuoteReassigned BookingAction = "quote_reassigned"
)

// QuoteAction tags what happened to a quote when its event is published.
type QuoteAction string

const (
	QuoteActionCreated  QuoteAction = "created"
	QuoteActionAnswered QuoteAction = "answered"
)

// QuoteEvent is an immutable snapshot of a quote taken at publish time.
// Price is only set when Action is QuoteActionAnswered.
type QuoteEvent struct {
	QuoteCode     string
	CustomerName  string
	CustomerEmail string
	Idea          string
	Size          float64
	Colors        string
	BodyLocation  string
	ImageCount    int
	Action        QuoteAction
	Price         *float64
}

// BookingEvent is an immutable snapshot of a booking taken at publish time.
// PrevStatus and NewStatus are only meaningful when Action is
// BookingActionStatusChanged.
type BookingEvent struct {
	BookingID     int64
	When          time.Time
	Status        BookingStatus
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Quote         QuoteEvent
	Action        BookingAction
	PrevStatus    BookingStatus
	NewStatus     BookingStatus
}

// InventoryThresholdEvent is published after every quantity change of a
// material. Minimum is nil when no alert threshold is configured; deciding
// whether the crossing warrants an alert is up to the subscriber.
type InventoryThresholdEvent struct {
	MaterialName string
	Quantity     float64
	Minimum      *float64
}

// BookingSubscriber receives booking events.
type BookingSubscriber interface {
	HandleBooking(e BookingEvent) error
}

// QuoteSubscriber receives quote events.
type QuoteSubscriber interface {
	HandleQuote(e QuoteEvent) error
}

// InventorySubscriber receives inventory threshold events.
type InventorySubscriber interface {
	HandleInventory(e InventoryThresholdEvent) error
}
