package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that no data exists for the requested time or place.
var ErrNotFound = errors.New("no data for the requested time or place")

// ProviderErrorKind classifies failures of an external provider call into
// a closed set so callers can branch without string matching.
type ProviderErrorKind int

const (
	// ProviderCommunication is a transport-level failure (network, DNS, TLS).
	ProviderCommunication ProviderErrorKind = iota

	// ProviderParsing means the response body matched neither the expected
	// success schema nor the expected failure schema.
	ProviderParsing

	// ProviderBadRequest means the provider validated and rejected the request.
	ProviderBadRequest
)

// String returns a short identifier for the error kind.
func (k ProviderErrorKind) String() string {
	switch k {
	case ProviderCommunication:
		return "communication"
	case ProviderParsing:
		return "parsing"
	case ProviderBadRequest:
		return "bad_request"
	default:
		return "unknown"
	}
}

// ProviderError represents a failure of an external HTTP provider call.
// Reason carries the provider's own rejection text verbatim when the
// provider returned a well-formed error payload.
type ProviderError struct {
	Kind   ProviderErrorKind
	Reason string
	Cause  error
}

// Error implements the error interface for ProviderError.
func (e *ProviderError) Error() string {
	switch {
	case e.Reason != "" && e.Cause != nil:
		return fmt.Sprintf("provider error (%s): %s: %v", e.Kind, e.Reason, e.Cause)
	case e.Reason != "":
		return fmt.Sprintf("provider error (%s): %s", e.Kind, e.Reason)
	case e.Cause != nil:
		return fmt.Sprintf("provider error (%s): %v", e.Kind, e.Cause)
	default:
		return fmt.Sprintf("provider error (%s)", e.Kind)
	}
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// InputParseError indicates that user-supplied auxiliary input (a date or
// time of day) could not be parsed. It is raised before any network call.
type InputParseError struct {
	Input string
	Cause error
}

// Error implements the error interface for InputParseError.
func (e *InputParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot parse input %q: %v", e.Input, e.Cause)
	}

	return fmt.Sprintf("cannot parse input %q", e.Input)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *InputParseError) Unwrap() error {
	return e.Cause
}
