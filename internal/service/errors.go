// Package service implements the business logic for quotes, bookings,
// inventory and notifications. State-changing operations publish domain
// events after the persistence step succeeds; event delivery is best-effort
// and never affects the outcome of the operation itself.
package service

import "fmt"

// Resource names the aggregate an error refers to.
type Resource string

const (
	ResourceQuote    Resource = "quote"
	ResourceBooking  Resource = "booking"
	ResourceMaterial Resource = "material"
	ResourceCustomer Resource = "customer"
	ResourceTemplate Resource = "template"
)

// NotFoundError is returned when the requested aggregate does not exist.
type NotFoundError struct {
	Resource Resource
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q does not exist", e.Resource, e.ID)
}

// ConflictError is returned when creating an aggregate whose identifier is
// already taken.
type ConflictError struct {
	Resource Resource
	ID       string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Resource, e.ID)
}

// ValidationError is returned when request data fails validation. Field is
// empty for errors that concern the request as a whole.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}
