package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundErrorMessage(t *testing.T) {
	err := &NotFoundError{Resource: ResourceQuote, ID: "ORC-1A2B3C4D"}

	assert.Equal(t, `quote "ORC-1A2B3C4D" does not exist`, err.Error())
}

func TestConflictErrorMessage(t *testing.T) {
	err := &ConflictError{Resource: ResourceMaterial, ID: "tinta preta"}

	assert.Equal(t, `material "tinta preta" already exists`, err.Error())
}

func TestValidationErrorMessage(t *testing.T) {
	withField := &ValidationError{Field: "price", Message: "must be positive"}
	assert.Equal(t, "invalid price: must be positive", withField.Error())

	bare := &ValidationError{Message: "empty request body"}
	assert.Equal(t, "empty request body", bare.Error())
}

func TestErrorTaxonomySurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("looking up booking: %w",
		&NotFoundError{Resource: ResourceBooking, ID: "42"})

	var nfe *NotFoundError
	require.True(t, errors.As(wrapped, &nfe))
	assert.Equal(t, ResourceBooking, nfe.Resource)
}
