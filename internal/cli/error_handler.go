package cli

import (
	stderrors "errors"
	"fmt"

	"todo-sync/internal/errors"
	"todo-sync/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	var opErr *OperationError
	if stderrors.As(err, &opErr) {
		return fmt.Errorf("%s", opErr.Message)
	}

	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return fmt.Errorf("%s", validationErr.GetUserFriendlyMessage())
	}

	if errors.IsAppError(err) {
		return fmt.Errorf("%s", errors.GetUserMessage(err))
	}

	// Fallback for unknown errors
	return err
}

// IsOperationError checks if an error reports a failed remote operation
func (eh *ErrorHandler) IsOperationError(err error) bool {
	var opErr *OperationError
	return stderrors.As(err, &opErr)
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation) || errors.IsErrorType(err, errors.ErrorTypeInvalidInput)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
