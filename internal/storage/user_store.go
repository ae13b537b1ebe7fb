package storage

import (
	"context"
	"time"
)

// User is a registered account: a customer, or a studio administrator when
// IsAdmin is set.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// UserStore defines the interface for user persistence.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	// ListAdminEmails returns the e-mail addresses of all users flagged as
	// administrator. An empty result is valid.
	ListAdminEmails(ctx context.Context) ([]string, error)
}
