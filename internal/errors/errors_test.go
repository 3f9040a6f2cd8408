package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	err := ErrInvalidInput.WithDetails("purchase_price: must be greater than 0", "agency_rate: must be at most 0.10")

	assert.Equal(t, "invalid property input: purchase_price: must be greater than 0; agency_rate: must be at most 0.10", err.Error())
	assert.True(t, stderrors.Is(err, ErrInvalidInput))
	assert.False(t, stderrors.Is(err, ErrCalculationNotFound))
	assert.Empty(t, ErrInvalidInput.Details, "WithDetails must not mutate the sentinel")

	wrapped := fmt.Errorf("calculate: %w", err)
	var de *DomainError
	assert.True(t, stderrors.As(wrapped, &de))
	assert.Equal(t, "INVALID_INPUT", de.Code)
}
