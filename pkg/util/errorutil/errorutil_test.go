package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	wrapped := fmt.Errorf("handler: %w", NewValidationError("name required", nil))
	de := ToDomainError(wrapped)
	require.NotNil(t, de)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)

	de = ToDomainError(fmt.Errorf("load: %w", pgx.ErrNoRows))
	assert.Equal(t, "NOT_FOUND", de.Code)

	de = ToDomainError(fiber.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	assert.Equal(t, "NOT_FOUND", de.Code)

	cause := errors.New("connection reset")
	de = ToDomainError(cause)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.ErrorIs(t, de, cause)
}

func TestNotFoundCarriesDetails(t *testing.T) {
	de := ToDomainError(NewNotFound("partner", map[string]any{"partner_id": "p1"}))
	assert.Equal(t, "partner not found", de.Message)
	assert.Equal(t, "p1", de.Details["partner_id"])
}
