// Package apperror defines the error kinds services return and the HTTP status each maps to.
package apperror

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation     Kind = "validation"
	KindConflict       Kind = "conflict"
	KindNotFound       Kind = "not_found"
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindUpstream       Kind = "upstream"
	KindStore          Kind = "store"
)

type Error struct {
	Kind    Kind
	Message string
	Status  int
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Redacted reports whether the message must be hidden from clients.
func (e *Error) Redacted() bool {
	return e.Kind == KindStore || e.Kind == KindUpstream
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message, Status: http.StatusBadRequest}
}

// ValidationFields carries per-field messages from the validator.
func ValidationFields(message string, fields map[string]string) *Error {
	e := Validation(message)
	e.Fields = fields
	return e
}

// Conflict is a duplicate resource (409).
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message, Status: http.StatusConflict}
}

// InvalidTransition is a state conflict reported as a bad request (400).
func InvalidTransition(message string) *Error {
	return &Error{Kind: KindConflict, Message: message, Status: http.StatusBadRequest}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message, Status: http.StatusNotFound}
}

func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message, Status: http.StatusUnauthorized}
}

func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message, Status: http.StatusForbidden}
}

func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Status: http.StatusBadGateway, Err: err}
}

func Store(message string, err error) *Error {
	return &Error{Kind: KindStore, Message: message, Status: http.StatusInternalServerError, Err: err}
}

// KindOf returns the kind of err, or KindStore for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// Is reports whether err carries kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
