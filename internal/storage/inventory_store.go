package storage

import "context"

// Material is one inventory item. MinAlert is nil when no alert threshold
// has been configured for the item.
type Material struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Quantity float64  `json:"quantity"`
	Unit     string   `json:"unit"`
	MinAlert *float64 `json:"min_alert"`
}

// InventoryStore defines the interface for material persistence.
type InventoryStore interface {
	Create(ctx context.Context, m *Material) error
	// Get returns the material with the given id, or nil if absent.
	Get(ctx context.Context, id int64) (*Material, error)
	List(ctx context.Context) ([]*Material, error)
	FindByName(ctx context.Context, name string) ([]*Material, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, m *Material) error
	UpdateQuantity(ctx context.Context, id int64, quantity float64) error
	Delete(ctx context.Context, id int64) error
	// ListBelowMinimum returns materials whose quantity is strictly below
	// their configured minimum. Materials without a minimum never match.
	ListBelowMinimum(ctx context.Context) ([]*Material, error)
}
