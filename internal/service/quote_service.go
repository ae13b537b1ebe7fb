package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/orcana-hub/backoffice/internal/event"
	"github.com/orcana-hub/backoffice/internal/storage"
)

// CreateQuoteInput carries the fields a prospective customer submits.
type CreateQuoteInput struct {
	CustomerName string   `json:"customer_name"`
	Email        string   `json:"email"`
	Idea         string   `json:"idea"`
	SizeCM       float64  `json:"size_cm"`
	Colors       string   `json:"colors"`
	BodyLocation string   `json:"body_location"`
	Images       []string `json:"images"`
}

// QuoteService defines the business logic interface for quotes.
type QuoteService interface {
	CreateQuote(ctx context.Context, in CreateQuoteInput) (*storage.Quote, error)
	GetQuote(ctx context.Context, code string) (*storage.Quote, error)
	ListQuotes(ctx context.Context) ([]*storage.Quote, error)
	UpdateQuoteStatus(ctx context.Context, code, status string) (*storage.Quote, error)
	// AnswerQuote records the studio's price for the quote, marks it
	// Answered and publishes the answer event.
	AnswerQuote(ctx context.Context, code string, price float64) (*storage.Quote, error)
	// Publisher exposes the quote event publisher for subscriber management.
	Publisher() *event.QuotePublisher
}

type quoteService struct {
	store     storage.QuoteStore
	publisher *event.QuotePublisher
	logger    *slog.Logger
}

// NewQuoteService returns a QuoteService. The given subscriber is registered
// to the service's publisher at construction time.
func NewQuoteService(store storage.QuoteStore, sub event.QuoteSubscriber, logger *slog.Logger) QuoteService {
	if logger == nil {
		logger = slog.Default()
	}
	pub := event.NewQuotePublisher(logger)
	if sub != nil {
		pub.Register(sub)
	}
	return &quoteService{store: store, publisher: pub, logger: logger}
}

func (s *quoteService) Publisher() *event.QuotePublisher { return s.publisher }

// CreateQuote persists a new quote with a generated code and publishes its
// creation event.
func (s *quoteService) CreateQuote(ctx context.Context, in CreateQuoteInput) (*storage.Quote, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, &ValidationError{Field: "customer_name", Message: "is required"}
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, &ValidationError{Field: "email", Message: "is required"}
	}

	q := &storage.Quote{
		Code:         newQuoteCode(),
		CustomerName: in.CustomerName,
		Email:        in.Email,
		Idea:         in.Idea,
		SizeCM:       in.SizeCM,
		Colors:       in.Colors,
		BodyLocation: in.BodyLocation,
		Images:       in.Images,
		Status:       storage.QuoteStatusWaiting,
	}
	if err := s.store.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("creating quote: %w", err)
	}

	s.logger.Info("quote created", "code", q.Code, "customer", q.Email)
	s.publisher.Publish(quoteEvent(q, event.QuoteActionCreated))
	return q, nil
}

// AnswerQuote stores the price the studio quoted and moves the quote to
// Answered. The customer is informed through the published answer event.
func (s *quoteService) AnswerQuote(ctx context.Context, code string, price float64) (*storage.Quote, error) {
	if price <= 0 {
		return nil, &ValidationError{Field: "price", Message: "must be positive"}
	}

	existing, err := s.store.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("looking up quote: %w", err)
	}
	if existing == nil {
		return nil, &NotFoundError{Resource: ResourceQuote, ID: code}
	}

	if err := s.store.Answer(ctx, code, price); err != nil {
		return nil, fmt.Errorf("answering quote: %w", err)
	}
	existing.Price = &price
	existing.Status = storage.QuoteStatusAnswered

	s.logger.Info("quote answered", "code", code, "price", price)
	s.publisher.Publish(quoteEvent(existing, event.QuoteActionAnswered))
	return existing, nil
}

func (s *quoteService) GetQuote(ctx context.Context, code string) (*storage.Quote, error) {
	q, err := s.store.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("getting quote %q: %w", code, err)
	}
	if q == nil {
		return nil, &NotFoundError{Resource: ResourceQuote, ID: code}
	}
	return q, nil
}

func (s *quoteService) ListQuotes(ctx context.Context) ([]*storage.Quote, error) {
	quotes, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}
	return quotes, nil
}

func (s *quoteService) UpdateQuoteStatus(ctx context.Context, code, status string) (*storage.Quote, error) {
	switch status {
	case storage.QuoteStatusWaiting, storage.QuoteStatusAnswered, storage.QuoteStatusCancelled:
	default:
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}

	existing, err := s.store.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("looking up quote: %w", err)
	}
	if existing == nil {
		return nil, &NotFoundError{Resource: ResourceQuote, ID: code}
	}

	if err := s.store.UpdateStatus(ctx, code, status); err != nil {
		return nil, fmt.Errorf("updating quote status: %w", err)
	}
	existing.Status = status
	s.logger.Info("quote status updated", "code", code, "status", status)
	return existing, nil
}

// quoteEvent builds the immutable snapshot published for a quote.
func quoteEvent(q *storage.Quote, action event.QuoteAction) event.QuoteEvent {
	return event.QuoteEvent{
		Action:        action,
		Price:         q.Price,
		QuoteCode:     q.Code,
		CustomerName:  q.CustomerName,
		CustomerEmail: q.Email,
		Idea:          q.Idea,
		Size:          q.SizeCM,
		Colors:        q.Colors,
		BodyLocation:  q.BodyLocation,
		ImageCount:    len(q.Images),
	}
}

// newQuoteCode generates a short unique quote code, e.g. "ORC-1A2B3C4D".
func newQuoteCode() string {
	id := uuid.New()
	return "ORC-" + strings.ToUpper(id.String()[:8])
}
