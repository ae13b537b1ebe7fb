package storage

import (
	"context"
	"time"
)

// NotificationLogEntry records a single outbound e-mail delivery attempt.
type NotificationLogEntry struct {
	ID        int64     `json:"id"`
	Event     string    `json:"event"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	ErrorMsg  string    `json:"error_msg"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationStore defines the interface for persisting delivery logs.
type NotificationStore interface {
	// LogDelivery records a notification delivery attempt.
	LogDelivery(ctx context.Context, entry NotificationLogEntry) error
	// ListDeliveries returns the most recent log entries, up to limit.
	ListDeliveries(ctx context.Context, limit int) ([]NotificationLogEntry, error)
}
