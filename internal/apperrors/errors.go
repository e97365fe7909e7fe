package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so handlers can map it to an HTTP status
// without string matching.
type Kind int

const (
	// KindValidation marks malformed or missing input the caller can fix.
	KindValidation Kind = iota + 1
	// KindNotFound marks a referenced entity that does not exist.
	KindNotFound
	// KindConflict marks a business-rule violation, e.g. bidding on a closed product.
	KindConflict
	// KindInternal marks a storage or I/O fault.
	KindInternal
)

// Error is a classified domain error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validationf builds a Validation error.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a NotFound error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflictf builds a Conflict error.
func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure, keeping the cause for logs.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the classification of err, defaulting to KindInternal for
// errors that were never classified.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
