package core

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPayload is reported when an expected structured payload
	// cannot be encoded or decoded.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrUnknownTab is returned by explicit lookups for an id the registry
	// does not hold. Protocol handlers treat misses as no-ops instead.
	ErrUnknownTab = errors.New("unknown tab")

	// ErrNoOpener is returned when a tab is opened without an Opener.
	ErrNoOpener = errors.New("no opener configured")

	// ErrHandshakeExpired is returned when a child waited longer than its
	// handshake expiry for the parent's reply.
	ErrHandshakeExpired = errors.New("handshake expired")
)

// MalformedPayloadError carries the tag whose payload failed to
// encode or decode.
type MalformedPayloadError struct {
	Tag string
	Err error
}

// NewMalformedPayloadError wraps err for tag.
func NewMalformedPayloadError(tag string, err error) *MalformedPayloadError {
	return &MalformedPayloadError{Tag: tag, Err: err}
}

// Error implements the error interface.
func (e *MalformedPayloadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrMalformedPayload, e.Tag)
	}
	return fmt.Sprintf("%s: %s: %v", ErrMalformedPayload, e.Tag, e.Err)
}

// Unwrap returns the underlying codec or validation error.
func (e *MalformedPayloadError) Unwrap() error { return e.Err }

// Is reports ErrMalformedPayload as a match.
func (e *MalformedPayloadError) Is(target error) bool { return target == ErrMalformedPayload }
