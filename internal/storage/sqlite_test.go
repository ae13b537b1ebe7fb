package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, fresh, err := NewSQLiteDB(":memory:")
	require.NoError(t, err)
	require.True(t, fresh)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrationsCreateAllTables(t *testing.T) {
	db := newTestDB(t)

	for _, table := range []string{
		"users", "quotes", "quote_images", "bookings",
		"materials", "email_templates", "notification_log",
	} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %q missing", table)
	}
}

func TestMigrationsAreIdempotentOnExistingDB(t *testing.T) {
	dbPath := t.TempDir() + "/test.db"

	db, fresh, err := NewSQLiteDB(dbPath)
	require.NoError(t, err)
	require.True(t, fresh)
	require.NoError(t, db.Close())

	db, fresh, err = NewSQLiteDB(dbPath)
	require.NoError(t, err)
	assert.False(t, fresh)
	require.NoError(t, db.Close())
}

func TestUserStoreAdminEmails(t *testing.T) {
	db := newTestDB(t)
	store := NewSQLiteUserStore(db)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &User{Name: "Ana", Email: "ana@studio.test", IsAdmin: true}))
	require.NoError(t, store.Create(ctx, &User{Name: "Bia", Email: "bia@studio.test", IsAdmin: true}))
	require.NoError(t, store.Create(ctx, &User{Name: "Caio", Email: "caio@cliente.test"}))

	admins, err := store.ListAdminEmails(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ana@studio.test", "bia@studio.test"}, admins)

	u, err := store.GetByEmail(ctx, "caio@cliente.test")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Caio", u.Name)
	assert.False(t, u.IsAdmin)

	missing, err := store.GetByEmail(ctx, "ghost@cliente.test")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestQuoteStoreRoundTrip(t *testing.T) {
	db := newTestDB(t)
	store := NewSQLiteQuoteStore(db)
	ctx := context.Background()

	q := &Quote{
		Code:         "ORC-AAAA1111",
		CustomerName: "Maria",
		Email:        "maria@cliente.test",
		Idea:         "fênix no antebraço",
		SizeCM:       12,
		Colors:       "preto e vermelho",
		BodyLocation: "antebraço",
		Images:       []string{"a.png", "b.png"},
		Status:       QuoteStatusWaiting,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, store.Create(ctx, q))

	got, err := store.GetByCode(ctx, "ORC-AAAA1111")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, q.CustomerName, got.CustomerName)
	assert.Equal(t, q.Images, got.Images)

	require.NoError(t, store.UpdateStatus(ctx, q.Code, QuoteStatusAnswered))
	got, err = store.GetByCode(ctx, q.Code)
	require.NoError(t, err)
	assert.Equal(t, QuoteStatusAnswered, got.Status)
}

func TestBookingStoreDetailJoinsCustomerAndQuote(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users := NewSQLiteUserStore(db)
	quotes := NewSQLiteQuoteStore(db)
	bookings := NewSQLiteBookingStore(db)

	customer := &User{Name: "Maria", Email: "maria@cliente.test", Phone: "11999990000"}
	require.NoError(t, users.Create(ctx, customer))
	require.NoError(t, quotes.Create(ctx, &Quote{
		Code:         "ORC-AAAA1111",
		CustomerName: "Maria",
		Email:        "maria@cliente.test",
		Images:       []string{"a.png", "b.png", "c.png"},
		Status:       QuoteStatusWaiting,
		CreatedAt:    time.Now().UTC(),
	}))

	b := &Booking{
		ScheduledAt: time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC),
		Status:      "Waiting",
		CustomerID:  customer.ID,
		QuoteCode:   "ORC-AAAA1111",
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, bookings.Create(ctx, b))
	require.NotZero(t, b.ID)

	detail, err := bookings.GetDetail(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "Maria", detail.Customer.Name)
	assert.Equal(t, "ORC-AAAA1111", detail.Quote.Code)
	assert.Equal(t, 3, detail.ImageCount)

	byStatus, err := bookings.ListByStatus(ctx, "Waiting")
	require.NoError(t, err)
	assert.Len(t, byStatus, 1)

	require.NoError(t, bookings.UpdateStatus(ctx, b.ID, "Confirmed"))
	detail, err = bookings.GetDetail(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Confirmed", detail.Status)
}

func TestInventoryStoreListBelowMinimum(t *testing.T) {
	db := newTestDB(t)
	store := NewSQLiteInventoryStore(db)
	ctx := context.Background()

	min := 5.0
	require.NoError(t, store.Create(ctx, &Material{Name: "tinta preta", Quantity: 2, Unit: "ml", MinAlert: &min}))
	require.NoError(t, store.Create(ctx, &Material{Name: "tinta branca", Quantity: 9, Unit: "ml", MinAlert: &min}))
	require.NoError(t, store.Create(ctx, &Material{Name: "luvas", Quantity: 0, Unit: "un"}))

	low, err := store.ListBelowMinimum(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "tinta preta", low[0].Name)

	exists, err := store.ExistsByName(ctx, "TINTA PRETA")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTemplateStoreSeedDoesNotOverwrite(t *testing.T) {
	db := newTestDB(t)
	store := NewSQLiteTemplateStore(db)
	ctx := context.Background()

	require.NoError(t, store.Seed(ctx, []EmailTemplate{
		{Name: "stock_alert", Subject: "default subject", Body: "default body"},
	}))

	edited := &EmailTemplate{Name: "stock_alert", Subject: "edited subject", Body: "edited body"}
	require.NoError(t, store.Upsert(ctx, edited))

	require.NoError(t, store.Seed(ctx, []EmailTemplate{
		{Name: "stock_alert", Subject: "default subject", Body: "default body"},
	}))

	got, err := store.Get(ctx, "stock_alert")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "edited subject", got.Subject)
}

func TestNotificationStoreLogRoundTrip(t *testing.T) {
	db := newTestDB(t)
	store := NewSQLiteNotificationStore(db)
	ctx := context.Background()

	require.NoError(t, store.LogDelivery(ctx, NotificationLogEntry{
		Event:     "quote.created",
		Recipient: "maria@cliente.test",
		Subject:   "Confirmação",
		Status:    "sent",
		CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, store.LogDelivery(ctx, NotificationLogEntry{
		Event:     "quote.created",
		Recipient: "admin@studio.test",
		Subject:   "Novo Orçamento",
		Status:    "failed",
		ErrorMsg:  "smtp down",
		CreatedAt: time.Now().UTC(),
	}))

	entries, err := store.ListDeliveries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestQuoteStoreAnswerSetsPriceAndStatus(t *testing.T) {
	db := newTestDB(t)
	store := NewSQLiteQuoteStore(db)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &Quote{
		Code:         "ORC-AAAA1111",
		CustomerName: "Maria",
		Email:        "maria@cliente.test",
	}))

	created, err := store.GetByCode(ctx, "ORC-AAAA1111")
	require.NoError(t, err)
	assert.Nil(t, created.Price)

	require.NoError(t, store.Answer(ctx, "ORC-AAAA1111", 450))

	answered, err := store.GetByCode(ctx, "ORC-AAAA1111")
	require.NoError(t, err)
	require.NotNil(t, answered.Price)
	assert.Equal(t, 450.0, *answered.Price)
	assert.Equal(t, QuoteStatusAnswered, answered.Status)

	err = store.Answer(ctx, "ORC-MISSING1", 100)
	require.Error(t, err)
}

func TestQuoteStoreCountByStatus(t *testing.T) {
	db := newTestDB(t)
	store := NewSQLiteQuoteStore(db)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &Quote{Code: "ORC-AAAA1111", CustomerName: "Maria", Email: "m@c.test"}))
	require.NoError(t, store.Create(ctx, &Quote{Code: "ORC-BBBB2222", CustomerName: "Carlos", Email: "c@c.test"}))
	require.NoError(t, store.Answer(ctx, "ORC-BBBB2222", 300))

	waiting, err := store.CountByStatus(ctx, QuoteStatusWaiting)
	require.NoError(t, err)
	assert.Equal(t, 1, waiting)

	answered, err := store.CountByStatus(ctx, QuoteStatusAnswered)
	require.NoError(t, err)
	assert.Equal(t, 1, answered)
}

func TestBookingStoreDashboardQueries(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users := NewSQLiteUserStore(db)
	quotes := NewSQLiteQuoteStore(db)
	bookings := NewSQLiteBookingStore(db)

	customer := &User{Name: "Maria", Email: "maria@cliente.test"}
	require.NoError(t, users.Create(ctx, customer))

	price := 600.0
	require.NoError(t, quotes.Create(ctx, &Quote{
		Code: "ORC-AAAA1111", CustomerName: "Maria", Email: "maria@cliente.test", Price: &price,
	}))
	require.NoError(t, quotes.Create(ctx, &Quote{
		Code: "ORC-BBBB2222", CustomerName: "Maria", Email: "maria@cliente.test",
	}))

	add := func(scheduled time.Time, status, quoteCode string) {
		t.Helper()
		require.NoError(t, bookings.Create(ctx, &Booking{
			ScheduledAt: scheduled,
			Status:      status,
			CustomerID:  customer.ID,
			QuoteCode:   quoteCode,
		}))
	}

	add(time.Date(2026, 8, 10, 10, 0, 0, 0, time.UTC), BookingStatusCompleted, "ORC-AAAA1111")
	add(time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC), BookingStatusCompleted, "ORC-BBBB2222")
	add(time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC), BookingStatusWaiting, "ORC-AAAA1111")
	add(time.Date(2026, 8, 5, 10, 0, 0, 0, time.UTC), BookingStatusWaiting, "ORC-BBBB2222")

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 15, 23, 59, 59, 0, time.UTC)

	// Priceless quotes count as zero revenue; non-completed bookings are
	// excluded entirely.
	total, err := bookings.RevenueBetween(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, 600.0, total)

	between, err := bookings.ListBetween(ctx, from, to)
	require.NoError(t, err)
	assert.Len(t, between, 3)

	first, err := bookings.FirstByStatus(ctx, BookingStatusWaiting)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, time.Date(2026, 8, 5, 10, 0, 0, 0, time.UTC), first.ScheduledAt.UTC())

	none, err := bookings.FirstByStatus(ctx, BookingStatusCancelled)
	require.NoError(t, err)
	assert.Nil(t, none)
}
