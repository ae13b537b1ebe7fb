package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteInventoryStore implements InventoryStore backed by SQLite.
type SQLiteInventoryStore struct {
	db *sql.DB
}

// NewSQLiteInventoryStore returns a new SQLiteInventoryStore.
func NewSQLiteInventoryStore(db *sql.DB) *SQLiteInventoryStore {
	return &SQLiteInventoryStore{db: db}
}

// Create inserts a material and fills in the generated ID.
func (s *SQLiteInventoryStore) Create(ctx context.Context, m *Material) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO materials (name, quantity, unit, min_alert)
		VALUES (?, ?, ?, ?)`,
		m.Name, m.Quantity, m.Unit, m.MinAlert,
	)
	if err != nil {
		return fmt.Errorf("inserting material: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading material id: %w", err)
	}
	m.ID = id
	return nil
}

// Get returns the material with the given id, or nil if absent.
func (s *SQLiteInventoryStore) Get(ctx context.Context, id int64) (*Material, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, quantity, unit, min_alert FROM materials WHERE id = ?`, id)

	var m Material
	err := row.Scan(&m.ID, &m.Name, &m.Quantity, &m.Unit, &m.MinAlert)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning material: %w", err)
	}
	return &m, nil
}

// List returns all materials ordered by name.
func (s *SQLiteInventoryStore) List(ctx context.Context) ([]*Material, error) {
	return s.query(ctx, `SELECT id, name, quantity, unit, min_alert FROM materials ORDER BY name`)
}

// FindByName returns materials matching the exact name.
func (s *SQLiteInventoryStore) FindByName(ctx context.Context, name string) ([]*Material, error) {
	return s.query(ctx,
		`SELECT id, name, quantity, unit, min_alert FROM materials WHERE name = ?`, name)
}

// ExistsByName reports whether a material with the given name exists,
// compared case-insensitively.
func (s *SQLiteInventoryStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM materials WHERE LOWER(name) = LOWER(?)`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking material name: %w", err)
	}
	return n > 0, nil
}

// Update replaces all mutable fields of the material.
func (s *SQLiteInventoryStore) Update(ctx context.Context, m *Material) error {
	return s.exec(ctx, m.ID, `
		UPDATE materials SET name = ?, quantity = ?, unit = ?, min_alert = ?
		WHERE id = ?`,
		m.Name, m.Quantity, m.Unit, m.MinAlert, m.ID)
}

// UpdateQuantity sets only the quantity of the material.
func (s *SQLiteInventoryStore) UpdateQuantity(ctx context.Context, id int64, quantity float64) error {
	return s.exec(ctx, id, `UPDATE materials SET quantity = ? WHERE id = ?`, quantity, id)
}

// Delete removes the material.
func (s *SQLiteInventoryStore) Delete(ctx context.Context, id int64) error {
	return s.exec(ctx, id, `DELETE FROM materials WHERE id = ?`, id)
}

// ListBelowMinimum returns materials whose quantity is below their configured
// minimum, ordered by name. Materials without a configured minimum are skipped.
func (s *SQLiteInventoryStore) ListBelowMinimum(ctx context.Context) ([]*Material, error) {
	return s.query(ctx, `
		SELECT id, name, quantity, unit, min_alert FROM materials
		WHERE min_alert IS NOT NULL AND quantity < min_alert
		ORDER BY name`)
}

func (s *SQLiteInventoryStore) exec(ctx context.Context, id int64, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating material %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking material update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("material %d not found", id)
	}
	return nil
}

func (s *SQLiteInventoryStore) query(ctx context.Context, query string, args ...any) ([]*Material, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying materials: %w", err)
	}
	defer rows.Close()

	var materials []*Material
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Quantity, &m.Unit, &m.MinAlert); err != nil {
			return nil, fmt.Errorf("scanning material row: %w", err)
		}
		materials = append(materials, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating material rows: %w", err)
	}
	return materials, nil
}
