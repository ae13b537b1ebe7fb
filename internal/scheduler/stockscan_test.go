package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orcana-hub/backoffice/internal/storage"
)

// fakeInventory returns a fixed below-minimum list or an error.
type fakeInventory struct {
	storage.InventoryStore
	low []*storage.Material
	err error
}

func (f *fakeInventory) ListBelowMinimum(_ context.Context) ([]*storage.Material, error) {
	return f.low, f.err
}

// fakeNotifier records the messages handed to it.
type fakeNotifier struct {
	subjects []string
	bodies   []string
	err      error
}

func (n *fakeNotifier) NotifyAdmins(_ context.Context, _, subject, body string) error {
	n.subjects = append(n.subjects, subject)
	n.bodies = append(n.bodies, body)
	return n.err
}

func ptr(v float64) *float64 { return &v }

func TestStockScanAllAboveMinimum(t *testing.T) {
	notifier := &fakeNotifier{}
	job := NewStockScanJob(&fakeInventory{}, notifier, nil)

	job.Run(context.Background())

	require.Len(t, notifier.subjects, 1)
	assert.Equal(t, "Estoque OK", notifier.subjects[0])
	assert.Contains(t, notifier.bodies[0], "acima do nível mínimo")
}

func TestStockScanReportsEveryLowMaterial(t *testing.T) {
	notifier := &fakeNotifier{}
	job := NewStockScanJob(&fakeInventory{
		low: []*storage.Material{
			{Name: "tinta preta", Quantity: 2, Unit: "ml", MinAlert: ptr(10)},
			{Name: "agulha RL", Quantity: 4.5, Unit: "un", MinAlert: ptr(5)},
		},
	}, notifier, nil)

	job.Run(context.Background())

	require.Len(t, notifier.subjects, 1)
	assert.Equal(t, "Estoque Baixo", notifier.subjects[0])

	body := notifier.bodies[0]
	assert.Contains(t, body, "- tinta preta: 2 ml (Mínimo: 10)")
	assert.Contains(t, body, "- agulha RL: 4.5 un (Mínimo: 5)")
	assert.Equal(t, 2, strings.Count(body, "(Mínimo:"))
}

func TestStockScanSwallowsInventoryError(t *testing.T) {
	notifier := &fakeNotifier{}
	job := NewStockScanJob(&fakeInventory{err: errors.New("db locked")}, notifier, nil)

	require.NotPanics(t, func() {
		job.Run(context.Background())
	})
	assert.Empty(t, notifier.subjects)
}

func TestStockScanSwallowsNotifierError(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	job := NewStockScanJob(&fakeInventory{}, notifier, nil)

	require.NotPanics(t, func() {
		job.Run(context.Background())
	})
}
