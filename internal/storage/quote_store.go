package storage

import (
	"context"
	"time"
)

// Quote statuses.
const (
	QuoteStatusWaiting   = "Waiting"
	QuoteStatusAnswered  = "Answered"
	QuoteStatusCancelled = "Cancelled"
)

// Quote is a tattoo-service estimate submitted by a prospective customer.
type Quote struct {
	Code         string   `json:"code"`
	CustomerName string   `json:"customer_name"`
	Email        string   `json:"email"`
	Idea         string   `json:"idea"`
	SizeCM       float64  `json:"size_cm"`
	Colors       string   `json:"colors"`
	BodyLocation string   `json:"body_location"`
	Images       []string `json:"images"`
	// Price is the value quoted by the studio. Nil until the quote is
	// answered.
	Price     *float64  `json:"price"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// QuoteStore defines the interface for quote persistence.
type QuoteStore interface {
	Create(ctx context.Context, q *Quote) error
	// GetByCode returns the quote with the given code, or nil if absent.
	GetByCode(ctx context.Context, code string) (*Quote, error)
	List(ctx context.Context) ([]*Quote, error)
	UpdateStatus(ctx context.Context, code, status string) error
	// Answer records the studio's price for the quote and marks it Answered.
	Answer(ctx context.Context, code string, price float64) error
	CountByStatus(ctx context.Context, status string) (int, error)
}
