package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orcana-hub/backoffice/internal/event"
)

// fakeProvider records every message and can be made to fail per recipient.
type fakeProvider struct {
	sent    []Message
	failFor map[string]error
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Send(_ context.Context, msg Message) error {
	if err, ok := p.failFor[msg.To]; ok {
		return err
	}
	p.sent = append(p.sent, msg)
	return nil
}

// fakeDirectory returns a fixed admin list or an error.
type fakeDirectory struct {
	admins []string
	err    error
}

func (d *fakeDirectory) ListAdminEmails(_ context.Context) ([]string, error) {
	return d.admins, d.err
}

func newTestMailer(t *testing.T, provider *fakeProvider, directory *fakeDirectory) *Mailer {
	t.Helper()
	defaults, err := DefaultTemplates()
	require.NoError(t, err)
	return NewMailer(MailerConfig{
		Provider:      provider,
		Templates:     StaticSource(defaults),
		Directory:     directory,
		OperatorEmail: "operador@studio.test",
		StudioName:    "Júpiter Frito",
		Location:      time.UTC,
	})
}

func bookingEvent(action event.BookingAction) event.BookingEvent {
	return event.BookingEvent{
		BookingID:     7,
		When:          time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC),
		Status:        event.BookingConfirmed,
		CustomerName:  "Maria Silva",
		CustomerEmail: "maria@cliente.test",
		CustomerPhone: "11999990000",
		Quote: event.QuoteEvent{
			QuoteCode:     "ORC-1A2B3C4D",
			CustomerName:  "Maria Silva",
			CustomerEmail: "maria@cliente.test",
			Idea:          "fênix no antebraço",
			Size:          12,
			Colors:        "preto e vermelho",
			BodyLocation:  "antebraço",
			ImageCount:    2,
		},
		Action: action,
	}
}

func TestBookingCreatedSendsCustomerAndOperatorMail(t *testing.T) {
	provider := &fakeProvider{}
	m := newTestMailer(t, provider, &fakeDirectory{})

	err := m.HandleBooking(bookingEvent(event.BookingActionCreated))

	require.NoError(t, err)
	require.Len(t, provider.sent, 2)

	customer := provider.sent[0]
	assert.Equal(t, "maria@cliente.test", customer.To)
	assert.Contains(t, customer.Subject, "Júpiter Frito")
	assert.Contains(t, customer.Body, "Maria Silva")
	assert.Contains(t, customer.Body, "14/03/2026")
	assert.Contains(t, customer.Body, "15:30")
	assert.Contains(t, customer.Body, "ORC-1A2B3C4D")

	operator := provider.sent[1]
	assert.Equal(t, "operador@studio.test", operator.To)
	assert.Contains(t, operator.Subject, "ORC-1A2B3C4D")
	assert.Contains(t, operator.Body, "fênix no antebraço")
	assert.Contains(t, operator.Body, "12 cm")
	assert.Contains(t, operator.Body, "2 anexos")
}

func TestBookingStatusChangeMailNamesBothStatuses(t *testing.T) {
	provider := &fakeProvider{}
	m := newTestMailer(t, provider, &fakeDirectory{})

	e := bookingEvent(event.BookingActionStatusChanged)
	e.PrevStatus = event.BookingWaiting
	e.NewStatus = event.BookingConfirmed

	require.NoError(t, m.HandleBooking(e))
	require.Len(t, provider.sent, 1)
	assert.Contains(t, provider.sent[0].Body, "Waiting")
	assert.Contains(t, provider.sent[0].Body, "Confirmed")
}

func TestBookingCancelledMailGoesToCustomer(t *testing.T) {
	provider := &fakeProvider{}
	m := newTestMailer(t, provider, &fakeDirectory{})

	require.NoError(t, m.HandleBooking(bookingEvent(event.BookingActionCancelled)))
	require.Len(t, provider.sent, 1)
	assert.Equal(t, "maria@cliente.test", provider.sent[0].To)
	assert.Contains(t, provider.sent[0].Subject, "Cancelado")
}

func TestQuoteReassignmentProducesNoMail(t *testing.T) {
	provider := &fakeProvider{}
	m := newTestMailer(t, provider, &fakeDirectory{})

	require.NoError(t, m.HandleBooking(bookingEvent(event.BookingActionQuoteReassigned)))
	assert.Empty(t, provider.sent)
}

func TestQuoteCreatedSendsCustomerAndAdminMail(t *testing.T) {
	provider := &fakeProvider{}
	m := newTestMailer(t, provider, &fakeDirectory{admins: []string{"admin@studio.test"}})

	err := m.HandleQuote(event.QuoteEvent{
		QuoteCode:     "ORC-9Z8Y7X6W",
		CustomerName:  "Carlos",
		CustomerEmail: "carlos@cliente.test",
		Idea:          "dragão",
		Size:          20,
		Colors:        "colorido",
		BodyLocation:  "costas",
		ImageCount:    3,
	})

	require.NoError(t, err)
	require.Len(t, provider.sent, 2)
	assert.Equal(t, "carlos@cliente.test", provider.sent[0].To)
	assert.Contains(t, provider.sent[0].Body, "ORC-9Z8Y7X6W")
	assert.Equal(t, "admin@studio.test", provider.sent[1].To)
	assert.Contains(t, provider.sent[1].Subject, "ORC-9Z8Y7X6W")
}

func TestQuoteAnsweredSendsApprovalMailWithPrice(t *testing.T) {
	provider := &fakeProvider{}
	m := newTestMailer(t, provider, &fakeDirectory{admins: []string{"admin@studio.test"}})

	price := 450.0
	err := m.HandleQuote(event.QuoteEvent{
		QuoteCode:     "ORC-9Z8Y7X6W",
		CustomerName:  "Carlos",
		CustomerEmail: "carlos@cliente.test",
		Action:        event.QuoteActionAnswered,
		Price:         &price,
	})

	require.NoError(t, err)
	require.Len(t, provider.sent, 1)
	assert.Equal(t, "carlos@cliente.test", provider.sent[0].To)
	assert.Contains(t, provider.sent[0].Subject, "Aprovado")
	assert.Contains(t, provider.sent[0].Body, "R$ 450.00")
	assert.Contains(t, provider.sent[0].Body, "ORC-9Z8Y7X6W")
}

func TestInventoryNoMinimumIsSilent(t *testing.T) {
	provider := &fakeProvider{}
	m := newTestMailer(t, provider, &fakeDirectory{admins: []string{"admin@studio.test"}})

	err := m.HandleInventory(event.InventoryThresholdEvent{
		MaterialName: "tinta preta",
		Quantity:     1,
	})

	require.NoError(t, err)
	assert.Empty(t, provider.sent)
}

func TestInventoryAboveMinimumIsSilent(t *testing.T) {
	provider := &fakeProvider{}
	m := newTestMailer(t, provider, &fakeDirectory{admins: []string{"admin@studio.test"}})

	min := 5.0
	err := m.HandleInventory(event.InventoryThresholdEvent{
		MaterialName: "tinta preta",
		Quantity:     6,
		Minimum:      &min,
	})

	require.NoError(t, err)
	assert.Empty(t, provider.sent)
}

func TestInventoryBelowMinimumAlertsEveryAdmin(t *testing.T) {
	provider := &fakeProvider{}
	m := newTestMailer(t, provider, &fakeDirectory{
		admins: []string{"a@studio.test", "b@studio.test"},
	})

	min := 5.0
	err := m.HandleInventory(event.InventoryThresholdEvent{
		MaterialName: "tinta preta",
		Quantity:     4,
		Minimum:      &min,
	})

	require.NoError(t, err)
	require.Len(t, provider.sent, 2)
	assert.Contains(t, provider.sent[0].Subject, "tinta preta")
	assert.Contains(t, provider.sent[0].Body, "4")
	assert.Contains(t, provider.sent[0].Body, "5")
	assert.Equal(t, "a@studio.test", provider.sent[0].To)
	assert.Equal(t, "b@studio.test", provider.sent[1].To)
}

func TestInventoryAtMinimumAlerts(t *testing.T) {
	provider := &fakeProvider{}
	m := newTestMailer(t, provider, &fakeDirectory{admins: []string{"a@studio.test"}})

	min := 5.0
	err := m.HandleInventory(event.InventoryThresholdEvent{
		MaterialName: "agulha RL",
		Quantity:     5,
		Minimum:      &min,
	})

	require.NoError(t, err)
	assert.Len(t, provider.sent, 1)
}

func TestNotifyAdminsIsolatesPerRecipientFailures(t *testing.T) {
	provider := &fakeProvider{
		failFor: map[string]error{"a@studio.test": errors.New("mailbox full")},
	}
	m := newTestMailer(t, provider, &fakeDirectory{
		admins: []string{"a@studio.test", "b@studio.test"},
	})

	err := m.NotifyAdmins(context.Background(), "inventory.scan", "Estoque OK", "tudo certo")

	require.Error(t, err)
	require.Len(t, provider.sent, 1)
	assert.Equal(t, "b@studio.test", provider.sent[0].To)
}

func TestNotifyAdminsEmptyDirectoryIsNoOp(t *testing.T) {
	provider := &fakeProvider{}
	m := newTestMailer(t, provider, &fakeDirectory{})

	err := m.NotifyAdmins(context.Background(), "inventory.scan", "Estoque OK", "tudo certo")

	require.NoError(t, err)
	assert.Empty(t, provider.sent)
}

func TestNotifyAdminsDirectoryFailure(t *testing.T) {
	provider := &fakeProvider{}
	m := newTestMailer(t, provider, &fakeDirectory{err: errors.New("db locked")})

	err := m.NotifyAdmins(context.Background(), "inventory.scan", "Estoque OK", "tudo certo")

	require.Error(t, err)
	assert.Empty(t, provider.sent)
}

func TestMissingTemplateIsConfigError(t *testing.T) {
	provider := &fakeProvider{}
	m := NewMailer(MailerConfig{
		Provider:      provider,
		Templates:     StaticSource{},
		Directory:     &fakeDirectory{},
		OperatorEmail: "operador@studio.test",
		StudioName:    "Júpiter Frito",
		Location:      time.UTC,
	})

	err := m.HandleBooking(bookingEvent(event.BookingActionCancelled))

	require.ErrorIs(t, err, ErrTemplateNotFound)
	assert.Empty(t, provider.sent)
}
