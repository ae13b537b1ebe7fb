package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/orcana-hub/backoffice/internal/event"
	"github.com/orcana-hub/backoffice/internal/storage"
)

// CreateBookingInput carries the fields needed to schedule a booking.
type CreateBookingInput struct {
	CustomerEmail string    `json:"customer_email"`
	QuoteCode     string    `json:"quote_code"`
	ScheduledAt   time.Time `json:"scheduled_at"`
}

// BookingService defines the business logic interface for bookings.
type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*storage.BookingDetail, error)
	GetBooking(ctx context.Context, id int64) (*storage.BookingDetail, error)
	ListBookings(ctx context.Context) ([]*storage.BookingDetail, error)
	ListBookingsByStatus(ctx context.Context, status string) ([]*storage.BookingDetail, error)
	ListBookingsByCustomer(ctx context.Context, customerID int64) ([]*storage.BookingDetail, error)
	UpdateBookingStatus(ctx context.Context, id int64, status event.BookingStatus) (*storage.BookingDetail, error)
	CancelBooking(ctx context.Context, id int64) (*storage.BookingDetail, error)
	ReassignQuote(ctx context.Context, id int64, quoteCode string) (*storage.BookingDetail, error)
	DeleteBooking(ctx context.Context, id int64) error
	// Publisher exposes the booking event publisher for subscriber management.
	Publisher() *event.BookingPublisher
}

type bookingService struct {
	store      storage.BookingStore
	userStore  storage.UserStore
	quoteStore storage.QuoteStore
	publisher  *event.BookingPublisher
	logger     *slog.Logger
}

// NewBookingService returns a BookingService. The given subscriber is
// registered to the service's publisher at construction time.
func NewBookingService(
	store storage.BookingStore,
	userStore storage.UserStore,
	quoteStore storage.QuoteStore,
	sub event.BookingSubscriber,
	logger *slog.Logger,
) BookingService {
	if logger == nil {
		logger = slog.Default()
	}
	pub := event.NewBookingPublisher(logger)
	if sub != nil {
		pub.Register(sub)
	}
	return &bookingService{
		store:      store,
		userStore:  userStore,
		quoteStore: quoteStore,
		publisher:  pub,
		logger:     logger,
	}
}

func (s *bookingService) Publisher() *event.BookingPublisher { return s.publisher }

// CreateBooking persists a new booking in Waiting status and publishes the
// created event.
func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*storage.BookingDetail, error) {
	if in.ScheduledAt.IsZero() {
		return nil, &ValidationError{Field: "scheduled_at", Message: "is required"}
	}

	customer, err := s.userStore.GetByEmail(ctx, in.CustomerEmail)
	if err != nil {
		return nil, fmt.Errorf("looking up customer: %w", err)
	}
	if customer == nil {
		return nil, &NotFoundError{Resource: ResourceCustomer, ID: in.CustomerEmail}
	}

	quote, err := s.quoteStore.GetByCode(ctx, in.QuoteCode)
	if err != nil {
		return nil, fmt.Errorf("looking up quote: %w", err)
	}
	if quote == nil {
		return nil, &NotFoundError{Resource: ResourceQuote, ID: in.QuoteCode}
	}

	b := &storage.Booking{
		ScheduledAt: in.ScheduledAt,
		Status:      string(event.BookingWaiting),
		CustomerID:  customer.ID,
		QuoteCode:   quote.Code,
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	detail, err := s.store.GetDetail(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("loading created booking: %w", err)
	}

	s.logger.Info("booking created", "id", b.ID, "quote", quote.Code)
	s.publisher.Publish(bookingEvent(detail, event.BookingActionCreated))
	return detail, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id int64) (*storage.BookingDetail, error) {
	return s.getDetail(ctx, id)
}

func (s *bookingService) ListBookings(ctx context.Context) ([]*storage.BookingDetail, error) {
	bookings, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) ListBookingsByStatus(ctx context.Context, status string) ([]*storage.BookingDetail, error) {
	bookings, err := s.store.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("listing bookings by status: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) ListBookingsByCustomer(ctx context.Context, customerID int64) ([]*storage.BookingDetail, error) {
	bookings, err := s.store.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("listing bookings by customer: %w", err)
	}
	return bookings, nil
}

// UpdateBookingStatus moves the booking to a new status and publishes a
// status-changed event naming both the prior and the new status.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, id int64, status event.BookingStatus) (*storage.BookingDetail, error) {
	switch status {
	case event.BookingWaiting, event.BookingConfirmed, event.BookingCancelled, event.BookingCompleted:
	default:
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}

	detail, err := s.getDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	prev := event.BookingStatus(detail.Booking.Status)

	if err := s.store.UpdateStatus(ctx, id, string(status)); err != nil {
		return nil, fmt.Errorf("updating booking status: %w", err)
	}
	detail.Booking.Status = string(status)

	s.logger.Info("booking status updated", "id", id, "from", prev, "to", status)

	e := bookingEvent(detail, event.BookingActionStatusChanged)
	e.PrevStatus = prev
	e.NewStatus = status
	s.publisher.Publish(e)
	return detail, nil
}

// CancelBooking moves the booking to Cancelled and publishes a cancellation
// event.
func (s *bookingService) CancelBooking(ctx context.Context, id int64) (*storage.BookingDetail, error) {
	detail, err := s.getDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateStatus(ctx, id, string(event.BookingCancelled)); err != nil {
		return nil, fmt.Errorf("cancelling booking: %w", err)
	}
	detail.Booking.Status = string(event.BookingCancelled)

	s.logger.Info("booking cancelled", "id", id)
	s.publisher.Publish(bookingEvent(detail, event.BookingActionCancelled))
	return detail, nil
}

// ReassignQuote points the booking at a different quote and publishes a
// reassignment event.
func (s *bookingService) ReassignQuote(ctx context.Context, id int64, quoteCode string) (*storage.BookingDetail, error) {
	quote, err := s.quoteStore.GetByCode(ctx, quoteCode)
	if err != nil {
		return nil, fmt.Errorf("looking up quote: %w", err)
	}
	if quote == nil {
		return nil, &NotFoundError{Resource: ResourceQuote, ID: quoteCode}
	}

	if _, err := s.getDetail(ctx, id); err != nil {
		return nil, err
	}

	if err := s.store.ReassignQuote(ctx, id, quoteCode); err != nil {
		return nil, fmt.Errorf("reassigning quote: %w", err)
	}

	detail, err := s.getDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking quote reassigned", "id", id, "quote", quoteCode)
	s.publisher.Publish(bookingEvent(detail, event.BookingActionQuoteReassigned))
	return detail, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, id int64) error {
	if _, err := s.getDetail(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting booking: %w", err)
	}
	s.logger.Info("booking deleted", "id", id)
	return nil
}

func (s *bookingService) getDetail(ctx context.Context, id int64) (*storage.BookingDetail, error) {
	detail, err := s.store.GetDetail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting booking %d: %w", id, err)
	}
	if detail == nil {
		return nil, &NotFoundError{Resource: ResourceBooking, ID: strconv.FormatInt(id, 10)}
	}
	return detail, nil
}

// bookingEvent builds the immutable snapshot published for a booking.
func bookingEvent(d *storage.BookingDetail, action event.BookingAction) event.BookingEvent {
	return event.BookingEvent{
		BookingID:     d.ID,
		When:          d.ScheduledAt,
		Status:        event.BookingStatus(d.Booking.Status),
		CustomerName:  d.Customer.Name,
		CustomerEmail: d.Customer.Email,
		CustomerPhone: d.Customer.Phone,
		Quote: event.QuoteEvent{
			QuoteCode:     d.Quote.Code,
			CustomerName:  d.Quote.CustomerName,
			CustomerEmail: d.Quote.Email,
			Idea:          d.Quote.Idea,
			Size:          d.Quote.SizeCM,
			Colors:        d.Quote.Colors,
			BodyLocation:  d.Quote.BodyLocation,
			ImageCount:    d.ImageCount,
		},
		Action: action,
	}
}
