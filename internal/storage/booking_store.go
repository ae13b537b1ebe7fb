package storage

import (
	"context"
	"time"
)

// Booking statuses.
const (
	BookingStatusWaiting   = "Waiting"
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCancelled = "Cancelled"
	BookingStatusCompleted = "Completed"
)

// Booking links a customer to an approved quote at a scheduled time.
type Booking struct {
	ID          int64     `json:"id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	CustomerID  int64     `json:"customer_id"`
	QuoteCode   string    `json:"quote_code"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookingDetail is a booking joined with its customer and quote rows, as
// needed to render customer-facing notifications.
type BookingDetail struct {
	Booking
	Customer   User  `json:"customer"`
	Quote      Quote `json:"quote"`
	ImageCount int   `json:"image_count"`
}

// BookingStore defines the interface for booking persistence.
type BookingStore interface {
	Create(ctx context.Context, b *Booking) error
	// GetDetail returns the booking with customer and quote joined, or nil
	// if absent.
	GetDetail(ctx context.Context, id int64) (*BookingDetail, error)
	List(ctx context.Context) ([]*BookingDetail, error)
	ListByStatus(ctx context.Context, status string) ([]*BookingDetail, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*BookingDetail, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*BookingDetail, error)
	// FirstByStatus returns the earliest-scheduled booking with the given
	// status, or nil when there is none.
	FirstByStatus(ctx context.Context, status string) (*BookingDetail, error)
	// RevenueBetween sums the quoted prices of completed bookings scheduled
	// inside the [from, to] window. Quotes without a price count as zero.
	RevenueBetween(ctx context.Context, from, to time.Time) (float64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	ReassignQuote(ctx context.Context, id int64, quoteCode string) error
	Delete(ctx context.Context, id int64) error
}
