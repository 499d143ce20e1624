package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Request errors
	ErrCodeMalformedRequest ErrorCode = "MALFORMED_REQUEST"
	ErrCodeUnknownOperation ErrorCode = "UNKNOWN_OPERATION"

	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Server lifecycle errors
	ErrCodeServerUnavailable ErrorCode = "SERVER_UNAVAILABLE"
	ErrCodeAlreadyRunning    ErrorCode = "ALREADY_RUNNING"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// CatalogError represents a structured error with context
type CatalogError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *CatalogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *CatalogError) WithDetail(key string, value interface{}) *CatalogError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *CatalogError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new CatalogError
func New(code ErrorCode, message string) *CatalogError {
	return &CatalogError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a CatalogError
func Wrap(err error, code ErrorCode, message string) *CatalogError {
	return &CatalogError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific CatalogError code
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	catErr, ok := err.(*CatalogError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return catErr.Code
}

// HTTPStatus maps an error to the status code a handler should answer with.
// Request-level failures are client errors; everything else is a server error.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeMalformedRequest, ErrCodeUnknownOperation, ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeServerUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
