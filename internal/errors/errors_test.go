package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("field is required")
	err := NewValidationError("validation failed", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Code != "VALIDATION_FAILED" {
		t.Errorf("NewValidationError code = %v, want %v", err.Code, "VALIDATION_FAILED")
	}
	if err.Cause != cause {
		t.Errorf("NewValidationError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("user", "ana")

	if err.Message != "user not found: ana" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "user not found: ana")
	}
	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "ana" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransportError("list users", cause)

	if err.Type != ErrorTypeTransport {
		t.Errorf("NewTransportError type = %v, want %v", err.Type, ErrorTypeTransport)
	}
	if err.Message != "request failed: list users" {
		t.Errorf("NewTransportError message = %v", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Errorf("NewTransportError should unwrap to its cause")
	}
}

func TestNewHTTPStatusError(t *testing.T) {
	err := NewHTTPStatusError("list tasks", 404, "  {\"detail\":\"User ana doesn't exist.\"}\n")

	if err.Message != `404 - {"detail":"User ana doesn't exist."}` {
		t.Errorf("NewHTTPStatusError message = %q", err.Message)
	}
	body, ok := err.GetContext("body")
	if !ok || body != `{"detail":"User ana doesn't exist."}` {
		t.Errorf("NewHTTPStatusError should keep trimmed body in context")
	}
	if HTTPStatus(err) != 404 {
		t.Errorf("HTTPStatus() = %d, want 404", HTTPStatus(err))
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"status error", NewHTTPStatusError("add task", 500, "boom"), 500},
		{"wrapped status error", fmt.Errorf("outer: %w", NewHTTPStatusError("add task", 422, "")), 422},
		{"transport error", NewTransportError("add task", errors.New("eof")), 0},
		{"regular error", errors.New("regular"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.expected {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original error")
	err := WrapError(cause, ErrorTypeDatabase, "wrapped message")

	if err.Code != "database" {
		t.Errorf("WrapError code = %v, want %v", err.Code, "database")
	}
	if err.Cause != cause {
		t.Errorf("WrapError cause = %v, want %v", err.Cause, cause)
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(&AppError{Type: ErrorTypeValidation}) {
		t.Errorf("IsAppError should return true for AppError")
	}
	if IsAppError(errors.New("regular error")) {
		t.Errorf("IsAppError should return false for regular error")
	}
	if IsAppError(nil) {
		t.Errorf("IsAppError should return false for nil")
	}
}

func TestIsErrorType(t *testing.T) {
	appError := &AppError{Type: ErrorTypeDecode}

	if !IsErrorType(appError, ErrorTypeDecode) {
		t.Errorf("IsErrorType should return true for matching type")
	}
	if IsErrorType(appError, ErrorTypeTransport) {
		t.Errorf("IsErrorType should return false for different type")
	}
	if IsErrorType(errors.New("regular error"), ErrorTypeDecode) {
		t.Errorf("IsErrorType should return false for regular error")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Validation error",
			err:      NewValidationError("label is required", nil),
			expected: "label is required",
		},
		{
			name:     "HTTP status error",
			err:      NewHTTPStatusError("list tasks", 404, "not here"),
			expected: "404 - not here",
		},
		{
			name:     "Transport error",
			err:      NewTransportError("list users", errors.New("dial tcp: refused")),
			expected: "request failed: list users: dial tcp: refused",
		},
		{
			name:     "Decode error",
			err:      NewDecodeError("list users", errors.New("unexpected EOF")),
			expected: "invalid response body: list users: unexpected EOF",
		},
		{
			name:     "Database error",
			err:      NewDatabaseError("query", errors.New("locked")),
			expected: "A database error occurred. Please try again.",
		},
		{
			name:     "Timeout error",
			err:      NewTimeoutError("delete task", "30s"),
			expected: "The operation timed out. Please try again.",
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: "regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetUserMessage(tt.err)
			if result != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if GetErrorCode(NewDecodeError("x", nil)) != "DECODE_ERROR" {
		t.Errorf("GetErrorCode should return correct code for AppError")
	}
	if GetErrorCode(errors.New("regular error")) != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode should return UNKNOWN_ERROR for regular error")
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Validation error", NewValidationError("invalid input", nil), false},
		{"Not found error", NewNotFoundError("user", "123"), false},
		{"Invalid input error", NewInvalidInputError("id", "x", "not a number"), false},
		{"Transport error", NewTransportError("list users", errors.New("eof")), true},
		{"HTTP status error", NewHTTPStatusError("list users", 503, ""), true},
		{"Regular error", errors.New("regular error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ShouldLogError(tt.err)
			if result != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", result, tt.expected)
			}
		})
	}
}
