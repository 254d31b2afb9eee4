package grading

import (
	"errors"
	"fmt"
)

// ErrNotConfigured means no API credential is available. It is surfaced at
// client construction time and never retried.
var ErrNotConfigured = errors.New("grading: LLM API key not configured")

// TransportError wraps a network fault, timeout, or non-2xx status from the
// model endpoint. Retrying is the caller's decision.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("grading: transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamFormatError means the reply is clearly not a grading response: it
// contains neither a score nor a feedback marker. This usually indicates a
// prompt or model regression and is worth alerting on, so it is not
// absorbed by the parse fallbacks.
type UpstreamFormatError struct {
	Raw string
}

func (e *UpstreamFormatError) Error() string {
	return "grading: upstream reply has no score or feedback fields"
}
