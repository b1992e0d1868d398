package discord

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is()
var (
	// Lifecycle errors
	ErrNotConfigured = errors.New("mockcord: backend not configured")
	ErrClosed        = errors.New("mockcord: transport closed")

	// API-shaped errors
	ErrForbidden = errors.New("mockcord: forbidden")
	ErrNotFound  = errors.New("mockcord: not found")

	// Entity lookups
	ErrUnknownGuild   = errors.New("mockcord: unknown guild")
	ErrUnknownChannel = errors.New("mockcord: unknown channel")
	ErrUnknownMember  = errors.New("mockcord: unknown member")
	ErrUnknownRole    = errors.New("mockcord: unknown role")
	ErrUnknownMessage = errors.New("mockcord: unknown message")
	ErrUnknownUser    = errors.New("mockcord: unknown user")
)

// APIError mirrors the real service's error envelope so client-side error
// handling under test behaves identically against the fake transport.
// Use errors.As() to extract details, errors.Is() to match sentinels.
type APIError struct {
	Code    int    // HTTP-shaped status code (403, 404, ...)
	Message string // fixed reason string, e.g. "missing send_messages"
	Op      string // operation that failed
	cause   error  // underlying sentinel for errors.Is()
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mockcord: %s failed: %s (code=%d)", e.Op, e.Message, e.Code)
}

// Unwrap returns the underlying sentinel error for errors.Is() support.
func (e *APIError) Unwrap() error { return e.cause }

// NewForbidden returns a 403-shaped error for a failed permission check.
func NewForbidden(op, reason string) *APIError {
	return &APIError{Code: 403, Message: reason, Op: op, cause: ErrForbidden}
}

// NewNotFound returns a 404-shaped error. cause narrows the sentinel, e.g.
// ErrUnknownMessage; pass nil to match only ErrNotFound.
func NewNotFound(op, message string, cause error) *APIError {
	if cause == nil {
		cause = ErrNotFound
	}
	return &APIError{Code: 404, Message: message, Op: op, cause: fmt.Errorf("%w: %w", ErrNotFound, cause)}
}

// UnsupportedError is returned by every endpoint the fake transport does not
// implement. It carries the operation's own name so missing-feature failures
// are self-describing.
type UnsupportedError struct {
	Op string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("mockcord: operation %q is not supported by the fake transport", e.Op)
}

// ValidationError represents malformed caller input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("mockcord: validation: %s - %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
