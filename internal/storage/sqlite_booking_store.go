package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteBookingStore implements BookingStore backed by SQLite.
type SQLiteBookingStore struct {
	db *sql.DB
}

// NewSQLiteBookingStore returns a new SQLiteBookingStore.
func NewSQLiteBookingStore(db *sql.DB) *SQLiteBookingStore {
	return &SQLiteBookingStore{db: db}
}

const bookingDetailQuery = `
	SELECT b.id, b.scheduled_at, b.status, b.customer_id, b.quote_code, b.created_at,
	       u.id, u.name, u.email, u.phone, u.is_admin, u.created_at,
	       q.code, q.customer_name, q.email, q.idea, q.size_cm, q.colors, q.body_location, q.price, q.status, q.created_at,
	       (SELECT COUNT(*) FROM quote_images qi WHERE qi.quote_code = q.code)
	FROM bookings b
	JOIN users u ON u.id = b.customer_id
	JOIN quotes q ON q.code = b.quote_code`

// Create inserts a booking and fills in the generated ID.
func (s *SQLiteBookingStore) Create(ctx context.Context, b *Booking) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO bookings (scheduled_at, status, customer_id, quote_code, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		b.ScheduledAt, b.Status, b.CustomerID, b.QuoteCode, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting booking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading booking id: %w", err)
	}
	b.ID = id
	return nil
}

// GetDetail returns one booking with customer and quote joined, or nil if absent.
func (s *SQLiteBookingStore) GetDetail(ctx context.Context, id int64) (*BookingDetail, error) {
	row := s.db.QueryRowContext(ctx, bookingDetailQuery+` WHERE b.id = ?`, id)
	d, err := scanBookingDetail(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning booking detail: %w", err)
	}
	return d, nil
}

// List returns all bookings ordered by scheduled time.
func (s *SQLiteBookingStore) List(ctx context.Context) ([]*BookingDetail, error) {
	return s.query(ctx, bookingDetailQuery+` ORDER BY b.scheduled_at`)
}

// ListByStatus returns bookings with the given status ordered by scheduled time.
func (s *SQLiteBookingStore) ListByStatus(ctx context.Context, status string) ([]*BookingDetail, error) {
	return s.query(ctx, bookingDetailQuery+` WHERE b.status = ? ORDER BY b.scheduled_at`, status)
}

// ListByCustomer returns bookings belonging to one customer.
func (s *SQLiteBookingStore) ListByCustomer(ctx context.Context, customerID int64) ([]*BookingDetail, error) {
	return s.query(ctx, bookingDetailQuery+` WHERE b.customer_id = ? ORDER BY b.scheduled_at`, customerID)
}

// ListBetween returns bookings scheduled inside the [from, to] window.
func (s *SQLiteBookingStore) ListBetween(ctx context.Context, from, to time.Time) ([]*BookingDetail, error) {
	return s.query(ctx, bookingDetailQuery+` WHERE b.scheduled_at BETWEEN ? AND ? ORDER BY b.scheduled_at`, from, to)
}

// FirstByStatus returns the earliest-scheduled booking with the given
// status, or nil when there is none.
func (s *SQLiteBookingStore) FirstByStatus(ctx context.Context, status string) (*BookingDetail, error) {
	row := s.db.QueryRowContext(ctx, bookingDetailQuery+` WHERE b.status = ? ORDER BY b.scheduled_at LIMIT 1`, status)
	d, err := scanBookingDetail(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning booking detail: %w", err)
	}
	return d, nil
}

// RevenueBetween sums the quoted prices of completed bookings scheduled
// inside the [from, to] window. Quotes without a price count as zero.
func (s *SQLiteBookingStore) RevenueBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(COALESCE(q.price, 0)), 0)
		FROM bookings b
		JOIN quotes q ON q.code = b.quote_code
		WHERE b.status = ? AND b.scheduled_at BETWEEN ? AND ?`,
		BookingStatusCompleted, from, to).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing booking revenue: %w", err)
	}
	return total, nil
}

// UpdateStatus sets the booking status.
func (s *SQLiteBookingStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	return s.exec(ctx, id, `UPDATE bookings SET status = ? WHERE id = ?`, status, id)
}

// ReassignQuote points the booking at a different quote.
func (s *SQLiteBookingStore) ReassignQuote(ctx context.Context, id int64, quoteCode string) error {
	return s.exec(ctx, id, `UPDATE bookings SET quote_code = ? WHERE id = ?`, quoteCode, id)
}

// Delete removes the booking.
func (s *SQLiteBookingStore) Delete(ctx context.Context, id int64) error {
	return s.exec(ctx, id, `DELETE FROM bookings WHERE id = ?`, id)
}

func (s *SQLiteBookingStore) exec(ctx context.Context, id int64, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating booking %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking booking update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("booking %d not found", id)
	}
	return nil
}

func (s *SQLiteBookingStore) query(ctx context.Context, query string, args ...any) ([]*BookingDetail, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}
	defer rows.Close()

	var details []*BookingDetail
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning booking row: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating booking rows: %w", err)
	}
	return details, nil
}

// scanner abstracts sql.Row and sql.Rows for scanBookingDetail.
type scanner interface {
	Scan(dest ...any) error
}

func scanBookingDetail(row scanner) (*BookingDetail, error) {
	var d BookingDetail
	err := row.Scan(
		&d.ID, &d.ScheduledAt, &d.Booking.Status, &d.CustomerID, &d.QuoteCode, &d.Booking.CreatedAt,
		&d.Customer.ID, &d.Customer.Name, &d.Customer.Email, &d.Customer.Phone, &d.Customer.IsAdmin, &d.Customer.CreatedAt,
		&d.Quote.Code, &d.Quote.CustomerName, &d.Quote.Email, &d.Quote.Idea, &d.Quote.SizeCM,
		&d.Quote.Colors, &d.Quote.BodyLocation, &d.Quote.Price, &d.Quote.Status, &d.Quote.CreatedAt,
		&d.ImageCount,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
