package apperr

import "errors"

// Kind classifies a domain failure so handlers can map it to an HTTP status
// without inspecting error strings.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindPreconditionFailed
	KindInsufficientQuantity
)

// Error is a domain error with a classification.
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

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func PreconditionFailed(message string) *Error {
	return New(KindPreconditionFailed, message)
}

func InsufficientQuantity(message string) *Error {
	return New(KindInsufficientQuantity, message)
}

// Wrap attaches a classification to an underlying error while keeping it
// reachable via errors.Unwrap.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the classification of err, defaulting to KindInternal for
// unclassified errors (storage/IO failures).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps a classification to its response status code.
// Authenticated-but-disallowed is always 403, never 401.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthorized:
		return 401
	case KindForbidden:
		return 403
	case KindNotFound:
		return 404
	case KindPreconditionFailed, KindInsufficientQuantity:
		return 400
	default:
		return 500
	}
}
