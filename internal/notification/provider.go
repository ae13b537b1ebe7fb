// Package notification renders the studio's outbound e-mails from editable
// templates and delivers them through a transport provider. The Mailer type
// is the single concrete subscriber registered to every event publisher.
package notification

import "context"

// Message is one (recipient, subject, body) triple to be delivered by a
// Provider. Body is plain text.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Provider is the interface for notification delivery backends.
type Provider interface {
	// Name returns the provider identifier (e.g. "smtp").
	Name() string
	// Send delivers the message using the provider's transport.
	Send(ctx context.Context, msg Message) error
}

// AdminDirectory resolves the recipients of operator-facing notifications.
type AdminDirectory interface {
	// ListAdminEmails returns the addresses of all users flagged as
	// administrator. An empty result is valid.
	ListAdminEmails(ctx context.Context) ([]string, error)
}
