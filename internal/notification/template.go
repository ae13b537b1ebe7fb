package notification

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/orcana-hub/backoffice/internal/storage"
)

// Template names resolved by the Mailer.
const (
	TplBookingConfirmed     = "booking_confirmed"
	TplBookingOperator      = "booking_operator"
	TplBookingCancelled     = "booking_cancelled"
	TplBookingStatusChanged = "booking_status_changed"
	TplQuoteReceived        = "quote_received"
	TplQuoteOperator        = "quote_operator"
	TplQuoteAnswered        = "quote_answered"
	TplStockAlert           = "stock_alert"
)

// ErrTemplateNotFound is returned when a named template does not exist.
// A missing template is a configuration error, not a delivery error.
var ErrTemplateNotFound = errors.New("template not found")

// Template is a subject line and plain-text body, both allowed to contain
// ${placeholder} markers.
type Template struct {
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

// TemplateSource resolves templates by name.
type TemplateSource interface {
	Template(ctx context.Context, name string) (Template, error)
}

// Render substitutes ${name} placeholders in the template's subject and body
// from data. Every placeholder must resolve; a placeholder with no entry in
// data makes Render fail so that half-rendered text is never sent.
func Render(t Template, data map[string]string) (subject, body string, err error) {
	missing := map[string]bool{}
	expand := func(s string) string {
		return os.Expand(s, func(name string) string {
			v, ok := data[name]
			if !ok {
				missing[name] = true
			}
			return v
		})
	}

	subject = expand(t.Subject)
	body = expand(t.Body)

	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for name := range missing {
			names = append(names, name)
		}
		sort.Strings(names)
		return "", "", fmt.Errorf("unresolved placeholders: %s", strings.Join(names, ", "))
	}
	return subject, body, nil
}

// StaticSource is a TemplateSource backed by an in-memory map.
type StaticSource map[string]Template

// Template returns the named template or ErrTemplateNotFound.
func (s StaticSource) Template(_ context.Context, name string) (Template, error) {
	t, ok := s[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return t, nil
}

// StoreSource resolves templates from the persistent template store, so
// operator edits take effect without a restart.
type StoreSource struct {
	store storage.TemplateStore
}

// NewStoreSource returns a TemplateSource backed by store.
func NewStoreSource(store storage.TemplateStore) *StoreSource {
	return &StoreSource{store: store}
}

// Template loads the named template from the store. A missing row maps to
// ErrTemplateNotFound.
func (s *StoreSource) Template(ctx context.Context, name string) (Template, error) {
	row, err := s.store.Get(ctx, name)
	if err != nil {
		return Template{}, fmt.Errorf("loading template %q: %w", name, err)
	}
	if row == nil {
		return Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return Template{Subject: row.Subject, Body: row.Body}, nil
}
