package service

import "errors"

// ErrorKind classifies a service failure. The HTTP layer maps kinds to status
// codes; services themselves never deal in status codes.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindUnavailable
	KindValidation
)

// Error is a typed failure produced by the service layer.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func unavailable(msg string) *Error {
	return &Error{Kind: KindUnavailable, Message: msg}
}

func validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// KindOf extracts the kind from an error chain, KindInternal when untyped.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
