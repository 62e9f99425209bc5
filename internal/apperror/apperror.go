// Package apperror defines the typed errors returned by services and
// rendered by handlers.
package apperror

import (
	"errors"
	"maps"
	"net/http"
)

// Kind classifies an error for transport mapping.
type Kind string

// Error kinds.
const (
	KindInvalidRequest    Kind = "INVALID_REQUEST"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindForbidden         Kind = "FORBIDDEN"
	KindNotFound          Kind = "NOT_FOUND"
	KindConflict          Kind = "CONFLICT"
	KindPaymentRequired   Kind = "PAYMENT_REQUIRED"
	KindPaymentProcessing Kind = "PAYMENT_PROCESSING_ERROR"
	KindInvalidTicket     Kind = "INVALID_TICKET"
	KindInternal          Kind = "INTERNAL_ERROR"
)

// Status returns the HTTP status for the kind.
// Conflicts render as 400 to keep the public contract of duplicate registrations.
func (k Kind) Status() int {
	switch k {
	case KindInvalidRequest, KindConflict, KindInvalidTicket:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindPaymentRequired:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified application error.
// Two errors are equal under errors.Is when kind and code match, so a sentinel
// still matches after WithDetails or WithMessage.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]any
}

// New creates an error with no details.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target has the same kind and code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// WithDetails returns a copy carrying extra response fields.
func (e *Error) WithDetails(details map[string]any) *Error {
	cp := *e
	cp.Details = make(map[string]any, len(e.Details)+len(details))
	maps.Copy(cp.Details, e.Details)
	maps.Copy(cp.Details, details)
	return &cp
}

// WithMessage returns a copy with a different message.
func (e *Error) WithMessage(message string) *Error {
	cp := *e
	cp.Message = message
	return &cp
}

// Status returns the HTTP status for the error kind.
func (e *Error) Status() int {
	return e.Kind.Status()
}

// As extracts an *Error from err.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// Common errors shared across modules.
var (
	ErrInvalidRequest = New(KindInvalidRequest, "INVALID_REQUEST", "invalid request")
	ErrUnauthorized   = New(KindUnauthorized, "UNAUTHORIZED", "authentication required")
	ErrInternal       = New(KindInternal, "INTERNAL_ERROR", "internal server error")
)
