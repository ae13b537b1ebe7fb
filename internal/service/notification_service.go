package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/orcana-hub/backoffice/internal/notification"
	"github.com/orcana-hub/backoffice/internal/storage"
)

// NotificationService exposes delivery-log access and a connectivity test.
type NotificationService interface {
	// TestNotification sends a test message to the given address so
	// operators can verify the SMTP credentials.
	TestNotification(ctx context.Context, to string) error
	// ListLog returns the most recent delivery log entries.
	ListLog(ctx context.Context, limit int) ([]storage.NotificationLogEntry, error)
}

type notificationService struct {
	provider notification.Provider
	store    storage.NotificationStore
	studio   string
	logger   *slog.Logger
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(
	provider notification.Provider,
	store storage.NotificationStore,
	studioName string,
	logger *slog.Logger,
) NotificationService {
	return &notificationService{
		provider: provider,
		store:    store,
		studio:   studioName,
		logger:   logger,
	}
}

func (s *notificationService) TestNotification(ctx context.Context, to string) error {
	if to == "" {
		return &ValidationError{Field: "to", Message: "is required"}
	}

	err := s.provider.Send(ctx, notification.Message{
		To:      to,
		Subject: fmt.Sprintf("Teste de envio - %s", s.studio),
		Body:    "Olá, este é um e-mail de teste!\n\nSua configuração de SMTP está funcionando corretamente.",
	})
	if err != nil {
		return fmt.Errorf("sending test notification: %w", err)
	}
	s.logger.Info("test notification sent", "recipient", to)
	return nil
}

func (s *notificationService) ListLog(ctx context.Context, limit int) ([]storage.NotificationLogEntry, error) {
	return s.store.ListDeliveries(ctx, limit)
}
