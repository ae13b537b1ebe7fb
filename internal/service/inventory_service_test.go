package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orcana-hub/backoffice/internal/event"
	"github.com/orcana-hub/backoffice/internal/storage"
)

// fakeInventoryStore is an in-memory InventoryStore.
type fakeInventoryStore struct {
	nextID    int64
	materials map[int64]*storage.Material
}

func newFakeInventoryStore() *fakeInventoryStore {
	return &fakeInventoryStore{materials: map[int64]*storage.Material{}}
}

func (f *fakeInventoryStore) Create(_ context.Context, m *storage.Material) error {
	f.nextID++
	m.ID = f.nextID
	f.materials[m.ID] = m
	return nil
}

func (f *fakeInventoryStore) Get(_ context.Context, id int64) (*storage.Material, error) {
	m, ok := f.materials[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeInventoryStore) List(_ context.Context) ([]*storage.Material, error) {
	out := make([]*storage.Material, 0, len(f.materials))
	for _, m := range f.materials {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeInventoryStore) FindByName(_ context.Context, name string) ([]*storage.Material, error) {
	var out []*storage.Material
	for _, m := range f.materials {
		if strings.Contains(strings.ToLower(m.Name), strings.ToLower(name)) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeInventoryStore) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, m := range f.materials {
		if strings.EqualFold(m.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInventoryStore) Update(_ context.Context, m *storage.Material) error {
	f.materials[m.ID] = m
	return nil
}

func (f *fakeInventoryStore) UpdateQuantity(_ context.Context, id int64, quantity float64) error {
	f.materials[id].Quantity = quantity
	return nil
}

func (f *fakeInventoryStore) Delete(_ context.Context, id int64) error {
	delete(f.materials, id)
	return nil
}

func (f *fakeInventoryStore) ListBelowMinimum(_ context.Context) ([]*storage.Material, error) {
	var out []*storage.Material
	for _, m := range f.materials {
		if m.MinAlert != nil && m.Quantity < *m.MinAlert {
			out = append(out, m)
		}
	}
	return out, nil
}

// inventoryRecorder records every threshold event it receives.
type inventoryRecorder struct {
	events []event.InventoryThresholdEvent
}

func (r *inventoryRecorder) HandleInventory(e event.InventoryThresholdEvent) error {
	r.events = append(r.events, e)
	return nil
}

func TestCreateMaterialRejectsDuplicateName(t *testing.T) {
	store := newFakeInventoryStore()
	svc := NewInventoryService(store, nil, nil)

	_, err := svc.CreateMaterial(context.Background(), &storage.Material{Name: "Tinta Preta", Unit: "ml"})
	require.NoError(t, err)

	_, err = svc.CreateMaterial(context.Background(), &storage.Material{Name: "tinta preta", Unit: "ml"})
	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
}

func TestUpdateQuantityPublishesSnapshot(t *testing.T) {
	store := newFakeInventoryStore()
	rec := &inventoryRecorder{}
	svc := NewInventoryService(store, rec, nil)

	min := 5.0
	m, err := svc.CreateMaterial(context.Background(), &storage.Material{
		Name: "tinta preta", Quantity: 10, Unit: "ml", MinAlert: &min,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(context.Background(), m.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, updated.Quantity)

	require.Len(t, rec.events, 1)
	e := rec.events[0]
	assert.Equal(t, "tinta preta", e.MaterialName)
	assert.Equal(t, 4.0, e.Quantity)
	require.NotNil(t, e.Minimum)
	assert.Equal(t, 5.0, *e.Minimum)
}

func TestUpdateQuantityWithoutMinimumStillPublishes(t *testing.T) {
	store := newFakeInventoryStore()
	rec := &inventoryRecorder{}
	svc := NewInventoryService(store, rec, nil)

	m, err := svc.CreateMaterial(context.Background(), &storage.Material{Name: "luvas", Quantity: 100, Unit: "un"})
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(context.Background(), m.ID, 99)
	require.NoError(t, err)

	require.Len(t, rec.events, 1)
	assert.Nil(t, rec.events[0].Minimum)
}

func TestFindMaterialNotFound(t *testing.T) {
	svc := NewInventoryService(newFakeInventoryStore(), nil, nil)

	_, err := svc.FindMaterial(context.Background(), "agulha")

	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
}
