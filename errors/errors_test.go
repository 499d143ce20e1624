package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCatalogError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeUnknownOperation, "unknown operation")
	if err.Code != ErrCodeUnknownOperation {
		t.Errorf("expected code %s, got %s", ErrCodeUnknownOperation, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeMalformedRequest, "bad body")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	if !Is(wrapped, ErrCodeMalformedRequest) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeUnknownOperation) {
		t.Error("Is should return false for non-matching code")
	}

	// Codes survive fmt wrapping
	outer := fmt.Errorf("handler: %w", wrapped)
	if GetCode(outer) != ErrCodeMalformedRequest {
		t.Errorf("expected code through %%w, got %q", GetCode(outer))
	}

	detailed := err.WithDetail("operation", "deleteCat").WithDetail("attempt", 2)
	if detailed.Details["operation"] != "deleteCat" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	err := UnknownOperation("deleteCat")
	if err.Code != ErrCodeUnknownOperation {
		t.Errorf("expected code %s, got %s", ErrCodeUnknownOperation, err.Code)
	}
	if err.Details["operation"] != "deleteCat" {
		t.Error("UnknownOperation should include operation detail")
	}

	err = AlreadyRunning(4242)
	if err.Details["pid"] != 4242 {
		t.Error("AlreadyRunning should include pid detail")
	}

	err = MalformedRequestf(fmt.Errorf("eof"), "decoding %s", "body")
	if err.Message != "malformed request: decoding body" {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"malformed", MalformedRequest("empty body"), http.StatusBadRequest},
		{"unknown operation", UnknownOperation("x"), http.StatusBadRequest},
		{"unavailable", ServerUnavailable("127.0.0.1:1", nil), http.StatusServiceUnavailable},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
