package errors

import (
	stderrors "errors"
	"fmt"
)

// Application error types organized by category for better error handling

type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota

	// Transport errors - the four ways a backend call can fail
	ErrorTypeApplication
	ErrorTypeServer
	ErrorTypeNetwork
	ErrorTypeClient

	// Domain errors - input rejected before any I/O happens
	ErrorTypeValidation
	ErrorTypeNotFound

	// Infrastructure errors - used by the mock backend and adapters
	ErrorTypeDatabase
	ErrorTypeExternalAPI

	// System/Configuration errors
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeApplication:
		return "APPLICATION_ERROR"
	case ErrorTypeServer:
		return "SERVER_ERROR"
	case ErrorTypeNetwork:
		return "NETWORK_ERROR"
	case ErrorTypeClient:
		return "CLIENT_ERROR"
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeDatabase:
		return "DATABASE_ERROR"
	case ErrorTypeExternalAPI:
		return "EXTERNAL_API_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// IsTransport reports whether the type is one of the transport failure kinds.
func (e ErrorType) IsTransport() bool {
	switch e {
	case ErrorTypeApplication, ErrorTypeServer, ErrorTypeNetwork, ErrorTypeClient:
		return true
	default:
		return false
	}
}

// Short aliases
const (
	ApplicationError   = ErrorTypeApplication
	ServerError        = ErrorTypeServer
	NetworkError       = ErrorTypeNetwork
	ClientError        = ErrorTypeClient
	ValidationError    = ErrorTypeValidation
	NotFoundError      = ErrorTypeNotFound
	DatabaseError      = ErrorTypeDatabase
	ExternalAPIError   = ErrorTypeExternalAPI
	ConfigurationError = ErrorTypeConfiguration
)

// Fallback user messages for transport failures.
const (
	MessageRequestFailed = "Request failed"
	MessageServerError   = "Server error"
	MessageNetworkError  = "Network error, please check your connection"
	MessageInvalidData   = "Invalid response data"
)

// AppError carries an error classification and a message fit to show a user.
// Code is the envelope code of an application error, StatusCode the HTTP status of a server error.
type AppError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Code       int
	StatusCode int
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Transport error constructors

// NewApplicationError builds the error for an envelope whose code is not zero.
// An empty message falls back to MessageRequestFailed.
func NewApplicationError(code int, message string) *AppError {
	if message == "" {
		message = MessageRequestFailed
	}
	return &AppError{Type: ApplicationError, Message: message, Code: code}
}

// NewServerError builds the error for a non-2xx response.
// An empty message falls back to MessageServerError.
func NewServerError(statusCode int, message string) *AppError {
	if message == "" {
		message = MessageServerError
	}
	return &AppError{Type: ServerError, Message: message, StatusCode: statusCode}
}

func NewNetworkError(cause error) *AppError {
	return Wrap(NetworkError, MessageNetworkError, cause)
}

func NewClientError(cause error) *AppError {
	return Wrap(ClientError, MessageRequestFailed, cause)
}

func NewInvalidDataError(cause error) *AppError {
	return Wrap(ApplicationError, MessageInvalidData, cause)
}

// Domain error constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

// Infrastructure error constructors
func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(DatabaseError, message, cause)
}

func NewExternalAPIError(message string, cause error) *AppError {
	return Wrap(ExternalAPIError, message, cause)
}

func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// TypeOf returns the classification of err, ErrorTypeUnknown when it is not an AppError.
func TypeOf(err error) ErrorType {
	if appErr, ok := As(err); ok {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// UserMessage returns the text to show a user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := As(err); ok && appErr.Message != "" {
		return appErr.Message
	}
	return MessageRequestFailed
}

// Helper functions for error type checking
func IsApplicationError(err error) bool {
	return TypeOf(err) == ApplicationError
}

func IsServerError(err error) bool {
	return TypeOf(err) == ServerError
}

func IsNetworkError(err error) bool {
	return TypeOf(err) == NetworkError
}

func IsClientError(err error) bool {
	return TypeOf(err) == ClientError
}

func IsValidationError(err error) bool {
	return TypeOf(err) == ValidationError
}

func IsNotFoundError(err error) bool {
	return TypeOf(err) == NotFoundError
}

func IsDatabaseError(err error) bool {
	return TypeOf(err) == DatabaseError
}

func IsExternalAPIError(err error) bool {
	return TypeOf(err) == ExternalAPIError
}

func IsConfigurationError(err error) bool {
	return TypeOf(err) == ConfigurationError
}
