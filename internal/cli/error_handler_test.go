package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "todo-sync/internal/errors"
	"todo-sync/internal/validation"
)

func labelRequired() error {
	validationErr := validation.NewValidationError()
	validationErr.AddRequiredError("label")
	return validationErr
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"operation error", &OperationError{Message: "Error deleting task: 404 - gone"}, "Error deleting task: 404 - gone"},
		{"transport error", apperrors.NewTransportError("GET /users", errors.New("connection refused")), "request failed: GET /users: connection refused"},
		{"timeout error", apperrors.NewTimeoutError("GET /users", "30s"), "The operation timed out. Please try again."},
		{"validation error", labelRequired(), labelRequired().(*validation.ValidationError).GetUserFriendlyMessage()},
		{"not found error", apperrors.NewNotFoundError("task", "9"), "task not found: 9"},
		{"HTTP status error", apperrors.NewHTTPStatusError("GET /users", 502, "bad gateway\n"), "502 - bad gateway"},
		{"database error", apperrors.NewDatabaseError("insert", errors.New("locked")), "A database error occurred. Please try again."},
		{"wrapped app error", fmt.Errorf("failed to load view state: %w", apperrors.NewDatabaseError("select", errors.New("locked"))), "A database error occurred. Please try again."},
		{"regular error", errors.New("plain"), "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, eh.HandleSimple(tt.err).Error())
		})
	}
}

func TestErrorHandler_Classification(t *testing.T) {
	eh := NewErrorHandler()

	assert.True(t, eh.IsOperationError(&OperationError{Message: "x"}))
	assert.False(t, eh.IsOperationError(errors.New("x")))

	assert.True(t, eh.IsValidationError(labelRequired()))
	assert.True(t, eh.IsValidationError(apperrors.NewInvalidInputError("command", "x", "unknown command")))
	assert.False(t, eh.IsValidationError(errors.New("x")))

	assert.Equal(t, "HTTP_STATUS", eh.GetErrorCode(apperrors.NewHTTPStatusError("op", 500, "")))
	assert.Equal(t, "UNKNOWN_ERROR", eh.GetErrorCode(errors.New("x")))
}
