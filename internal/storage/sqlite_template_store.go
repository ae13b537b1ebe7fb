package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteTemplateStore implements TemplateStore backed by SQLite.
type SQLiteTemplateStore struct {
	db *sql.DB
}

// NewSQLiteTemplateStore returns a new SQLiteTemplateStore.
func NewSQLiteTemplateStore(db *sql.DB) *SQLiteTemplateStore {
	return &SQLiteTemplateStore{db: db}
}

// Get returns the template with the given name, or nil if absent.
func (s *SQLiteTemplateStore) Get(ctx context.Context, name string) (*EmailTemplate, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, subject, body FROM email_templates WHERE name = ?`, name)

	var t EmailTemplate
	err := row.Scan(&t.ID, &t.Name, &t.Subject, &t.Body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning template: %w", err)
	}
	return &t, nil
}

// List returns all templates ordered by name.
func (s *SQLiteTemplateStore) List(ctx context.Context) ([]*EmailTemplate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, subject, body FROM email_templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var templates []*EmailTemplate
	for rows.Next() {
		var t EmailTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.Body); err != nil {
			return nil, fmt.Errorf("scanning template row: %w", err)
		}
		templates = append(templates, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating template rows: %w", err)
	}
	return templates, nil
}

// Upsert inserts the template or replaces the subject and body of an
// existing row with the same name.
func (s *SQLiteTemplateStore) Upsert(ctx context.Context, t *EmailTemplate) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO email_templates (name, subject, body) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET subject = excluded.subject, body = excluded.body`,
		t.Name, t.Subject, t.Body,
	)
	if err != nil {
		return fmt.Errorf("upserting template %q: %w", t.Name, err)
	}
	return nil
}

// Seed inserts templates that do not exist yet, leaving existing rows alone.
func (s *SQLiteTemplateStore) Seed(ctx context.Context, templates []EmailTemplate) error {
	for _, t := range templates {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO email_templates (name, subject, body) VALUES (?, ?, ?)
			ON CONFLICT(name) DO NOTHING`,
			t.Name, t.Subject, t.Body,
		)
		if err != nil {
			return fmt.Errorf("seeding template %q: %w", t.Name, err)
		}
	}
	return nil
}
