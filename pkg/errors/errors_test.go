package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() *AppError
		expected string
	}{
		{
			name: "ErrorWithoutCause",
			setup: func() *AppError {
				return New(ValidationError, "keyword cannot be empty")
			},
			expected: "VALIDATION_ERROR: keyword cannot be empty",
		},
		{
			name: "ErrorWithCause",
			setup: func() *AppError {
				return NewNetworkError(fmt.Errorf("connection refused"))
			},
			expected: "NETWORK_ERROR: Network error, please check your connection (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.setup().Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("dial tcp: timeout")
	err := NewNetworkError(cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.Nil(t, New(NotFoundError, "missing").Unwrap())
}

func TestNewApplicationError(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		message string
		want    string
	}{
		{name: "KeepsMessage", code: 1, message: "city not found", want: "city not found"},
		{name: "FallsBackWhenEmpty", code: 500, message: "", want: MessageRequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewApplicationError(tt.code, tt.message)
			assert.Equal(t, ApplicationError, err.Type)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.want, err.Message)
		})
	}
}

func TestNewServerError(t *testing.T) {
	err := NewServerError(502, "")
	assert.Equal(t, ServerError, err.Type)
	assert.Equal(t, 502, err.StatusCode)
	assert.Equal(t, MessageServerError, err.Message)

	err = NewServerError(400, "Validation failed")
	assert.Equal(t, "Validation failed", err.Message)
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "Nil", err: nil, want: ""},
		{name: "AppError", err: NewApplicationError(1, "city not found"), want: "city not found"},
		{name: "WrappedAppError", err: fmt.Errorf("refresh: %w", NewNetworkError(nil)), want: MessageNetworkError},
		{name: "PlainError", err: fmt.Errorf("boom"), want: MessageRequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestTypeHelpers(t *testing.T) {
	wrapped := fmt.Errorf("load favorites: %w", NewServerError(500, ""))

	assert.True(t, IsServerError(wrapped))
	assert.False(t, IsNetworkError(wrapped))
	assert.True(t, IsClientError(NewClientError(nil)))
	assert.True(t, IsApplicationError(NewInvalidDataError(nil)))
	assert.True(t, IsValidationError(NewValidationError("x")))
	assert.True(t, IsConfigurationError(NewConfigurationError("x", nil)))
	assert.True(t, IsDatabaseError(NewDatabaseError("x", nil)))
	assert.True(t, IsNotFoundError(NewNotFoundError("x")))
	assert.True(t, IsExternalAPIError(NewExternalAPIError("x", nil)))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(fmt.Errorf("plain")))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.StatusCode)
}

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errType  ErrorType
		expected string
	}{
		{ErrorTypeApplication, "APPLICATION_ERROR"},
		{ErrorTypeServer, "SERVER_ERROR"},
		{ErrorTypeNetwork, "NETWORK_ERROR"},
		{ErrorTypeClient, "CLIENT_ERROR"},
		{ErrorTypeValidation, "VALIDATION_ERROR"},
		{ErrorTypeNotFound, "NOT_FOUND_ERROR"},
		{ErrorTypeDatabase, "DATABASE_ERROR"},
		{ErrorTypeExternalAPI, "EXTERNAL_API_ERROR"},
		{ErrorTypeConfiguration, "CONFIGURATION_ERROR"},
		{ErrorTypeUnknown, "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errType.String())
		})
	}
}

func TestErrorType_IsTransport(t *testing.T) {
	assert.True(t, ErrorTypeApplication.IsTransport())
	assert.True(t, ErrorTypeServer.IsTransport())
	assert.True(t, ErrorTypeNetwork.IsTransport())
	assert.True(t, ErrorTypeClient.IsTransport())
	assert.False(t, ErrorTypeValidation.IsTransport())
	assert.False(t, ErrorTypeUnknown.IsTransport())
}
