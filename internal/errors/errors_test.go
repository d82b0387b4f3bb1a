package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorUnwrapping(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("%w: %w", ErrPersistence, cause)

	var de *DomainError
	assert.True(t, stderrors.As(err, &de))
	assert.Equal(t, "PERSISTENCE_FAILURE", de.Code)
	assert.Equal(t, 500, de.Status)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.NotErrorIs(t, err, ErrInvalidAmount)
}
