// Package llmclient provides clients for external text-completion services.
package llmclient

import (
	"context"
	"errors"
	"fmt"
)

// Client sends a rendered prompt to a completion service and returns the
// raw completion text. Implementations perform a single call with no
// retries; classification of failures is left to the caller.
type Client interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
	Close() error
}

// ErrEmptyCompletion indicates a success status whose response envelope
// lacked any usable completion text.
var ErrEmptyCompletion = errors.New("empty completion from LLM")

// StatusError is returned when the completion service answers with a
// non-success status. It carries the upstream status code and a capped
// copy of the response body for diagnostics.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("completion service returned status %d: %s", e.StatusCode, e.Body)
}
