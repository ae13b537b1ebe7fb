package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteQuoteStore implements QuoteStore backed by SQLite.
type SQLiteQuoteStore struct {
	db *sql.DB
}

// NewSQLiteQuoteStore returns a new SQLiteQuoteStore.
func NewSQLiteQuoteStore(db *sql.DB) *SQLiteQuoteStore {
	return &SQLiteQuoteStore{db: db}
}

// Create inserts a quote and its reference image URLs in one transaction.
func (s *SQLiteQuoteStore) Create(ctx context.Context, q *Quote) error {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	if q.Status == "" {
		q.Status = QuoteStatusWaiting
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin quote insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO quotes (code, customer_name, email, idea, size_cm, colors, body_location, price, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.Code, q.CustomerName, q.Email, q.Idea, q.SizeCM, q.Colors, q.BodyLocation, q.Price, q.Status, q.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting quote: %w", err)
	}

	for _, url := range q.Images {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO quote_images (quote_code, image_url) VALUES (?, ?)`,
			q.Code, url,
		); err != nil {
			return fmt.Errorf("inserting quote image: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit quote insert: %w", err)
	}
	return nil
}

// GetByCode returns the quote with the given code, or nil if absent.
func (s *SQLiteQuoteStore) GetByCode(ctx context.Context, code string) (*Quote, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT code, customer_name, email, idea, size_cm, colors, body_location, price, status, created_at
		FROM quotes WHERE code = ?`, code)

	var q Quote
	err := row.Scan(&q.Code, &q.CustomerName, &q.Email, &q.Idea, &q.SizeCM,
		&q.Colors, &q.BodyLocation, &q.Price, &q.Status, &q.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning quote: %w", err)
	}

	images, err := s.images(ctx, code)
	if err != nil {
		return nil, err
	}
	q.Images = images
	return &q, nil
}

// List returns all quotes ordered by creation time descending.
func (s *SQLiteQuoteStore) List(ctx context.Context) ([]*Quote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, customer_name, email, idea, size_cm, colors, body_location, price, status, created_at
		FROM quotes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying quotes: %w", err)
	}
	defer rows.Close()

	var quotes []*Quote
	for rows.Next() {
		var q Quote
		if err := rows.Scan(&q.Code, &q.CustomerName, &q.Email, &q.Idea, &q.SizeCM,
			&q.Colors, &q.BodyLocation, &q.Price, &q.Status, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning quote row: %w", err)
		}
		quotes = append(quotes, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quote rows: %w", err)
	}

	for _, q := range quotes {
		images, err := s.images(ctx, q.Code)
		if err != nil {
			return nil, err
		}
		q.Images = images
	}
	return quotes, nil
}

// UpdateStatus sets the status of the quote with the given code.
func (s *SQLiteQuoteStore) UpdateStatus(ctx context.Context, code, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE quotes SET status = ? WHERE code = ?`, status, code)
	if err != nil {
		return fmt.Errorf("updating quote status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking quote update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("quote %q not found", code)
	}
	return nil
}

// Answer stores the quoted price and flips the status to Answered in one
// statement.
func (s *SQLiteQuoteStore) Answer(ctx context.Context, code string, price float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE quotes SET price = ?, status = ? WHERE code = ?`,
		price, QuoteStatusAnswered, code)
	if err != nil {
		return fmt.Errorf("answering quote: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking quote answer: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("quote %q not found", code)
	}
	return nil
}

// CountByStatus returns how many quotes currently have the given status.
func (s *SQLiteQuoteStore) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM quotes WHERE status = ?`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting quotes: %w", err)
	}
	return n, nil
}

func (s *SQLiteQuoteStore) images(ctx context.Context, code string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT image_url FROM quote_images WHERE quote_code = ? ORDER BY rowid`, code)
	if err != nil {
		return nil, fmt.Errorf("querying quote images: %w", err)
	}
	defer rows.Close()

	var images []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scanning quote image: %w", err)
		}
		images = append(images, url)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quote images: %w", err)
	}
	return images, nil
}
