package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/catalogd/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to stderr
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a message tailored to the error code and returns err.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}

	catErr, _ := err.(*errors.CatalogError)

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "❌ Configuration not found. Create catalogd.yml or drop --config to use the defaults.\n")

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(h.Out, "❌ Invalid configuration: %v\n", err)

	case errors.ErrCodeServerUnavailable:
		if catErr != nil && catErr.Details["addr"] != nil {
			fmt.Fprintf(h.Out, "❌ catalogd is not reachable at %v\n", catErr.Details["addr"])
		} else {
			fmt.Fprintf(h.Out, "❌ %v\n", err)
		}
		fmt.Fprintf(h.Out, "Start it with 'catalogd serve' or point --server at a running instance.\n")

	case errors.ErrCodeAlreadyRunning:
		if catErr != nil {
			fmt.Fprintf(h.Out, "❌ catalogd is already running (PID %v)\n", catErr.Details["pid"])
		}
		fmt.Fprintf(h.Out, "Stop it with 'catalogd stop' first.\n")

	case errors.ErrCodeMalformedRequest, errors.ErrCodeUnknownOperation:
		fmt.Fprintf(h.Out, "❌ The server rejected the request: %v\n", err)

	default:
		fmt.Fprintf(h.Out, "❌ Error: %v\n", err)
	}

	if h.Verbose && catErr != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", catErr.ToJSON())
	}
	return err
}
