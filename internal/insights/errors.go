package insights

import (
	"fmt"
	"net/http"
)

// Kind classifies a pipeline failure for callers.
type Kind string

const (
	// KindUpstreamUnavailable covers transport failures and non-success
	// statuses from the completion service.
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	// KindMalformedEnvelope covers success responses whose body lacks the
	// expected choices/message structure.
	KindMalformedEnvelope Kind = "malformed_upstream_envelope"
	// KindExtractionFailed means no JSON-bearing candidate was found in
	// the completion text.
	KindExtractionFailed Kind = "extraction_failed"
	// KindParseFailed means the candidate text is not valid JSON.
	KindParseFailed Kind = "parse_failed"
	// KindIncompleteResult means the parsed JSON lacks a required field.
	KindIncompleteResult Kind = "incomplete_result"
	// KindInternal is the outermost guard for anything unexpected.
	KindInternal Kind = "internal"
)

// Error is the caller-facing classified pipeline error. Message is safe to
// expose; Detail carries diagnostics for operators only.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus returns the status code for the response. Upstream failures
// propagate the upstream status when one was observed.
func (e *Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	if e.Kind == KindUpstreamUnavailable {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}
