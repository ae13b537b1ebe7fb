package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/orcana-hub/backoffice/internal/event"
	"github.com/orcana-hub/backoffice/internal/storage"
)

// InventoryService defines the business logic interface for materials.
type InventoryService interface {
	CreateMaterial(ctx context.Context, m *storage.Material) (*storage.Material, error)
	ListMaterials(ctx context.Context) ([]*storage.Material, error)
	FindMaterial(ctx context.Context, name string) ([]*storage.Material, error)
	UpdateMaterial(ctx context.Context, m *storage.Material) (*storage.Material, error)
	// UpdateQuantity sets a material's quantity and publishes a threshold
	// event with the resulting snapshot.
	UpdateQuantity(ctx context.Context, id int64, quantity float64) (*storage.Material, error)
	DeleteMaterial(ctx context.Context, id int64) error
	ListBelowMinimum(ctx context.Context) ([]*storage.Material, error)
	// Publisher exposes the inventory event publisher for subscriber management.
	Publisher() *event.InventoryPublisher
}

type inventoryService struct {
	store     storage.InventoryStore
	publisher *event.InventoryPublisher
	logger    *slog.Logger
}

// NewInventoryService returns an InventoryService. The given subscriber is
// registered to the service's publisher at construction time.
func NewInventoryService(store storage.InventoryStore, sub event.InventorySubscriber, logger *slog.Logger) InventoryService {
	if logger == nil {
		logger = slog.Default()
	}
	pub := event.NewInventoryPublisher(logger)
	if sub != nil {
		pub.Register(sub)
	}
	return &inventoryService{store: store, publisher: pub, logger: logger}
}

func (s *inventoryService) Publisher() *event.InventoryPublisher { return s.publisher }

func (s *inventoryService) CreateMaterial(ctx context.Context, m *storage.Material) (*storage.Material, error) {
	if strings.TrimSpace(m.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "is required"}
	}
	exists, err := s.store.ExistsByName(ctx, m.Name)
	if err != nil {
		return nil, fmt.Errorf("checking material name: %w", err)
	}
	if exists {
		return nil, &ConflictError{Resource: ResourceMaterial, ID: m.Name}
	}

	if err := s.store.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("creating material: %w", err)
	}
	s.logger.Info("material created", "id", m.ID, "name", m.Name)
	return m, nil
}

func (s *inventoryService) ListMaterials(ctx context.Context) ([]*storage.Material, error) {
	materials, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing materials: %w", err)
	}
	return materials, nil
}

func (s *inventoryService) FindMaterial(ctx context.Context, name string) ([]*storage.Material, error) {
	materials, err := s.store.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("finding material %q: %w", name, err)
	}
	if len(materials) == 0 {
		return nil, &NotFoundError{Resource: ResourceMaterial, ID: name}
	}
	return materials, nil
}

func (s *inventoryService) UpdateMaterial(ctx context.Context, m *storage.Material) (*storage.Material, error) {
	if _, err := s.get(ctx, m.ID); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("updating material: %w", err)
	}
	s.logger.Info("material updated", "id", m.ID, "name", m.Name)
	return m, nil
}

// UpdateQuantity persists the new quantity and publishes the threshold
// event. Whether the change warrants an alert is decided by the subscriber.
func (s *inventoryService) UpdateQuantity(ctx context.Context, id int64, quantity float64) (*storage.Material, error) {
	m, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateQuantity(ctx, id, quantity); err != nil {
		return nil, fmt.Errorf("updating material quantity: %w", err)
	}
	m.Quantity = quantity

	s.logger.Info("material quantity updated", "id", id, "name", m.Name, "quantity", quantity)
	s.publisher.Publish(event.InventoryThresholdEvent{
		MaterialName: m.Name,
		Quantity:     m.Quantity,
		Minimum:      m.MinAlert,
	})
	return m, nil
}

func (s *inventoryService) DeleteMaterial(ctx context.Context, id int64) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting material: %w", err)
	}
	s.logger.Info("material deleted", "id", id)
	return nil
}

func (s *inventoryService) ListBelowMinimum(ctx context.Context) ([]*storage.Material, error) {
	materials, err := s.store.ListBelowMinimum(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing materials below minimum: %w", err)
	}
	return materials, nil
}

func (s *inventoryService) get(ctx context.Context, id int64) (*storage.Material, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting material %d: %w", id, err)
	}
	if m == nil {
		return nil, &NotFoundError{Resource: ResourceMaterial, ID: strconv.FormatInt(id, 10)}
	}
	return m, nil
}
