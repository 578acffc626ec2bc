package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name         string
		err          *AppError
		expectedType ErrorType
		expectedCode string
	}{
		{
			name:         "should build not found error",
			err:          NewNotFoundError("client", "Acme Corp"),
			expectedType: ErrorTypeNotFound,
			expectedCode: "NOT_FOUND",
		},
		{
			name:         "should build storage error",
			err:          NewStorageError("read clients.csv", errors.New("permission denied")),
			expectedType: ErrorTypeStorage,
			expectedCode: "STORAGE_ERROR",
		},
		{
			name:         "should build invalid input error",
			err:          NewInvalidInputError("hours", -1, "must be positive"),
			expectedType: ErrorTypeInvalidInput,
			expectedCode: "INVALID_INPUT",
		},
		{
			name:         "should build conflict error",
			err:          NewConflictError("client", "Acme Corp"),
			expectedType: ErrorTypeConflict,
			expectedCode: "CONFLICT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.err.IsType(tt.expectedType))
			assert.Equal(t, tt.expectedCode, tt.err.Code)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("write time_entries.csv", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestAppError_Wrapping(t *testing.T) {
	inner := NewNotFoundError("client", "Acme Corp")
	outer := fmt.Errorf("loading report: %w", inner)

	var appErr *AppError
	require.ErrorAs(t, outer, &appErr)
	assert.True(t, appErr.IsType(ErrorTypeNotFound))
	assert.True(t, IsErrorType(outer, ErrorTypeNotFound))
}

func TestGetUserMessage(t *testing.T) {
	t.Run("should pass through user-facing messages", func(t *testing.T) {
		err := NewNotFoundError("client", "Acme Corp")
		assert.Equal(t, "client not found: Acme Corp", GetUserMessage(err))
	})

	t.Run("should mask storage details", func(t *testing.T) {
		err := NewStorageError("read clients.csv", errors.New("low-level detail"))
		msg := GetUserMessage(err)
		assert.NotContains(t, msg, "low-level detail")
		assert.Contains(t, msg, "storage error")
	})

	t.Run("should fall back to the raw error text", func(t *testing.T) {
		err := errors.New("plain error")
		assert.Equal(t, "plain error", GetUserMessage(err))
	})
}

func TestShouldLogError(t *testing.T) {
	assert.False(t, ShouldLogError(NewNotFoundError("client", "x")))
	assert.False(t, ShouldLogError(NewConflictError("client", "x")))
	assert.True(t, ShouldLogError(NewStorageError("op", errors.New("boom"))))
	assert.True(t, ShouldLogError(errors.New("plain error")))
}

func TestAppError_Context(t *testing.T) {
	err := NewInvalidInputError("hours", 25.0, "too many").WithContext("entry_id", int64(7))

	value, ok := err.GetContext("entry_id")
	require.True(t, ok)
	assert.Equal(t, int64(7), value)

	field, ok := err.GetContext("field")
	require.True(t, ok)
	assert.Equal(t, "hours", field)

	_, ok = err.GetContext("missing")
	assert.False(t, ok)
}
