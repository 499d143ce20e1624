package errors

import (
	"fmt"
)

// MalformedRequest creates an error for a request body that could not be decoded
func MalformedRequest(reason string) *CatalogError {
	return New(ErrCodeMalformedRequest, fmt.Sprintf("malformed request: %s", reason))
}

// MalformedRequestf wraps a decode failure as a malformed request error
func MalformedRequestf(err error, format string, args ...interface{}) *CatalogError {
	return Wrap(err, ErrCodeMalformedRequest, fmt.Sprintf("malformed request: "+format, args...))
}

// UnknownOperation creates an error for an operation name the executor does not serve
func UnknownOperation(name string) *CatalogError {
	return New(ErrCodeUnknownOperation, fmt.Sprintf("unknown operation '%s'", name)).
		WithDetail("operation", name)
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *CatalogError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *CatalogError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// ServerUnavailable creates an error for a catalog server that cannot be reached
func ServerUnavailable(addr string, err error) *CatalogError {
	return Wrap(err, ErrCodeServerUnavailable, fmt.Sprintf("catalog server at %s is not reachable", addr)).
		WithDetail("addr", addr)
}

// AlreadyRunning creates an error for a second server instance
func AlreadyRunning(pid int) *CatalogError {
	return New(ErrCodeAlreadyRunning, fmt.Sprintf("catalogd already running with PID %d", pid)).
		WithDetail("pid", pid)
}
