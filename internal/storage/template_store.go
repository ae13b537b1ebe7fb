package storage

import "context"

// EmailTemplate is an editable message template: a subject line and a plain
// text body, both allowed to contain ${placeholder} markers.
type EmailTemplate struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// TemplateStore defines the interface for e-mail template persistence.
type TemplateStore interface {
	// Get returns the template with the given name, or nil if absent.
	Get(ctx context.Context, name string) (*EmailTemplate, error)
	List(ctx context.Context) ([]*EmailTemplate, error)
	Upsert(ctx context.Context, t *EmailTemplate) error
	// Seed inserts every template that is not already present. Existing
	// rows are left untouched so operator edits survive restarts.
	Seed(ctx context.Context, templates []EmailTemplate) error
}
