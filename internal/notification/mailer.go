package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/orcana-hub/backoffice/internal/event"
	"github.com/orcana-hub/backoffice/internal/storage"
)

const (
	dateLayout     = "02/01/2006"
	timeLayout     = "15:04"
	dateTimeLayout = "02/01/2006 às 15:04"

	sendTimeout = 30 * time.Second
)

// Mailer renders e-mails from templates and delivers them through the
// configured Provider. It is the one concrete subscriber registered to the
// booking, quote and inventory publishers. Handler errors are reported to
// the publisher for logging; they never reach the business operation that
// raised the event.
type Mailer struct {
	provider  Provider
	templates TemplateSource
	directory AdminDirectory
	store     storage.NotificationStore
	operator  string
	studio    string
	loc       *time.Location
	logger    *slog.Logger
}

// MailerConfig holds the Mailer's collaborators.
type MailerConfig struct {
	Provider  Provider
	Templates TemplateSource
	Directory AdminDirectory
	// Store is optional; when set, every delivery attempt is recorded.
	Store storage.NotificationStore
	// OperatorEmail receives the operator copy of booking mails.
	OperatorEmail string
	StudioName    string
	// Location is the zone dates are formatted in. Defaults to time.Local.
	Location *time.Location
	Logger   *slog.Logger
}

// NewMailer creates a Mailer.
func NewMailer(cfg MailerConfig) *Mailer {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailer{
		provider:  cfg.Provider,
		templates: cfg.Templates,
		directory: cfg.Directory,
		store:     cfg.Store,
		operator:  cfg.OperatorEmail,
		studio:    cfg.StudioName,
		loc:       loc,
		logger:    logger,
	}
}

// HandleBooking implements event.BookingSubscriber.
func (m *Mailer) HandleBooking(e event.BookingEvent) error {
	switch e.Action {
	case event.BookingActionCreated:
		custErr := m.sendTemplate("booking.created", TplBookingConfirmed, e.CustomerEmail, map[string]string{
			"studio":          m.studio,
			"nomeCliente":     e.CustomerName,
			"dataFormatada":   e.When.In(m.loc).Format(dateLayout),
			"horaFormatada":   e.When.In(m.loc).Format(timeLayout),
			"codigoOrcamento": e.Quote.QuoteCode,
			"status":          string(e.Status),
		})
		opErr := m.sendTemplate("booking.created", TplBookingOperator, m.operator, map[string]string{
			"nomeCliente":       e.CustomerName,
			"emailCliente":      e.CustomerEmail,
			"telefoneCliente":   e.CustomerPhone,
			"dataHoraFormatada": e.When.In(m.loc).Format(dateTimeLayout),
			"codigoOrcamento":   e.Quote.QuoteCode,
			"ideia":             e.Quote.Idea,
			"tamanho":           formatQty(e.Quote.Size),
			"cores":             e.Quote.Colors,
			"localCorpo":        e.Quote.BodyLocation,
			"qtdImagens":        strconv.Itoa(e.Quote.ImageCount),
		})
		return errors.Join(custErr, opErr)

	case event.BookingActionCancelled:
		return m.sendTemplate("booking.cancelled", TplBookingCancelled, e.CustomerEmail, map[string]string{
			"studio":            m.studio,
			"nomeCliente":       e.CustomerName,
			"dataHoraFormatada": e.When.In(m.loc).Format(dateTimeLayout),
			"codigoOrcamento":   e.Quote.QuoteCode,
		})

	case event.BookingActionStatusChanged:
		return m.sendTemplate("booking.status_changed", TplBookingStatusChanged, e.CustomerEmail, map[string]string{
			"studio":            m.studio,
			"nomeCliente":       e.CustomerName,
			"dataHoraFormatada": e.When.In(m.loc).Format(dateTimeLayout),
			"codigoOrcamento":   e.Quote.QuoteCode,
			"statusAnterior":    string(e.PrevStatus),
			"novoStatus":        string(e.NewStatus),
		})
	}

	// Quote reassignment fans out but produces no mail.
	return nil
}

// HandleQuote implements event.QuoteSubscriber. A created quote produces a
// receipt for the customer plus an operator notification; an answered quote
// produces the approval mail carrying the studio's price.
func (m *Mailer) HandleQuote(e event.QuoteEvent) error {
	if e.Action == event.QuoteActionAnswered {
		return m.sendTemplate("quote.answered", TplQuoteAnswered, e.CustomerEmail, map[string]string{
			"studio":          m.studio,
			"nomeCliente":     e.CustomerName,
			"codigoOrcamento": e.QuoteCode,
			"valor":           formatPrice(e.Price),
		})
	}

	custErr := m.sendTemplate("quote.created", TplQuoteReceived, e.CustomerEmail, map[string]string{
		"studio":          m.studio,
		"nomeCliente":     e.CustomerName,
		"codigoOrcamento": e.QuoteCode,
	})

	data := map[string]string{
		"codigoOrcamento": e.QuoteCode,
		"emailCliente":    e.CustomerEmail,
		"ideia":           e.Idea,
		"tamanho":         formatQty(e.Size),
		"cores":           e.Colors,
		"localCorpo":      e.BodyLocation,
		"qtdImagens":      strconv.Itoa(e.ImageCount),
	}
	adminErr := m.sendTemplateToAdmins("quote.created", TplQuoteOperator, data)

	return errors.Join(custErr, adminErr)
}

// HandleInventory implements event.InventorySubscriber. When the material has
// no configured minimum, or its quantity is still above the minimum, no
// message is produced.
func (m *Mailer) HandleInventory(e event.InventoryThresholdEvent) error {
	if e.Minimum == nil || e.Quantity > *e.Minimum {
		return nil
	}
	return m.sendTemplateToAdmins("inventory.threshold", TplStockAlert, map[string]string{
		"nomeMaterial": e.MaterialName,
		"qtdAtual":     formatQty(e.Quantity),
		"limite":       formatQty(*e.Minimum),
	})
}

// NotifyAdmins delivers an already-rendered message to every administrator.
// Per-recipient failures are isolated; a directory failure is returned so
// the caller can log it.
func (m *Mailer) NotifyAdmins(ctx context.Context, eventName, subject, body string) error {
	admins, err := m.directory.ListAdminEmails(ctx)
	if err != nil {
		return fmt.Errorf("resolving admin recipients: %w", err)
	}
	if len(admins) == 0 {
		m.logger.Warn("no admin recipients configured", "event", eventName)
		return nil
	}

	var errs []error
	for _, to := range admins {
		if err := m.deliver(eventName, to, subject, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// sendTemplate renders the named template and delivers it to one recipient.
func (m *Mailer) sendTemplate(eventName, tplName, to string, data map[string]string) error {
	subject, body, err := m.render(eventName, tplName, data)
	if err != nil {
		return err
	}
	return m.deliver(eventName, to, subject, body)
}

// sendTemplateToAdmins renders the named template once and delivers it to
// every administrator.
func (m *Mailer) sendTemplateToAdmins(eventName, tplName string, data map[string]string) error {
	subject, body, err := m.render(eventName, tplName, data)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	return m.NotifyAdmins(ctx, eventName, subject, body)
}

// render resolves and renders a template. Failures here are configuration
// errors: logged at error severity and fatal to this notification attempt
// only.
func (m *Mailer) render(eventName, tplName string, data map[string]string) (subject, body string, err error) {
	tpl, err := m.templates.Template(context.Background(), tplName)
	if err != nil {
		m.logger.Error("notification template unavailable",
			"event", eventName, "template", tplName, "error", err)
		deliveriesTotal.WithLabelValues(eventName, "config_error").Inc()
		return "", "", err
	}
	subject, body, err = Render(tpl, data)
	if err != nil {
		m.logger.Error("notification template failed to render",
			"event", eventName, "template", tplName, "error", err)
		deliveriesTotal.WithLabelValues(eventName, "config_error").Inc()
		return "", "", err
	}
	return subject, body, nil
}

// deliver performs one provider call and records the outcome.
func (m *Mailer) deliver(eventName, to, subject, body string) error {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	sendErr := m.provider.Send(ctx, Message{To: to, Subject: subject, Body: body})

	entry := storage.NotificationLogEntry{
		Event:     eventName,
		Recipient: to,
		Subject:   subject,
		Status:    "sent",
		CreatedAt: time.Now().UTC(),
	}
	if sendErr != nil {
		entry.Status = "failed"
		entry.ErrorMsg = sendErr.Error()
		m.logger.Error("notification delivery failed",
			"event", eventName, "recipient", to, "error", sendErr)
	} else {
		m.logger.Info("notification delivered",
			"event", eventName, "recipient", to, "subject", subject)
	}
	deliveriesTotal.WithLabelValues(eventName, entry.Status).Inc()

	if m.store != nil {
		if logErr := m.store.LogDelivery(context.Background(), entry); logErr != nil {
			m.logger.Error("failed to record notification log",
				"event", eventName, "error", logErr)
		}
	}
	return sendErr
}

// formatQty renders a quantity without trailing zeros ("4", not "4.00").
func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatPrice renders a monetary value with two decimals.
func formatPrice(p *float64) string {
	if p == nil {
		return "0.00"
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}
