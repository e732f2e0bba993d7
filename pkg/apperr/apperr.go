// Package apperr is the error taxonomy shared by services, middleware and
// the response writer. Services return *Error values (or wrap them); the
// HTTP layer maps the Kind to a status code and a machine-readable code.
package apperr

import (
	"errors"
	"fmt"
	"sort"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindNotFound
	KindMethodNotAllowed
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindUnauthenticated:
		return "authentication_required"
	case KindNotFound:
		return "not_found"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "internal_error"
	}
}

// NonField is the field key used for errors that are not tied to one input.
const NonField = "non_field_errors"

// Fields maps an input field name to its error messages.
type Fields map[string][]string

// Add appends msg to field.
func (f Fields) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Merge copies every message of other into f.
func (f Fields) Merge(other Fields) {
	for k, msgs := range other {
		f[k] = append(f[k], msgs...)
	}
}

// Names returns the sorted field names carrying errors.
func (f Fields) Names() []string {
	names := make([]string, 0, len(f))
	for k := range f {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Fields  Fields
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Message != "":
		return e.Message + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Err.Error()
	case len(e.Fields) > 0:
		return fmt.Sprintf("%s (fields %v)", e.Message, e.Fields.Names())
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels matched with errors.Is by repositories and services.
var (
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "Not found."}
	ErrUnauthorized = &Error{Kind: KindUnauthenticated, Message: "Authentication credentials were not provided."}
)

// Is makes every *Error of the same Kind match a sentinel of that Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t == ErrNotFound || t == ErrUnauthorized)
}

// Validation builds a validation error from a field map.
func Validation(fields Fields) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed.", Fields: fields}
}

// Field is shorthand for a single-field validation error.
func Field(field, msg string) *Error {
	return Validation(Fields{field: {msg}})
}

// NotFound builds a not-found error with a custom message.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Unauthenticated builds a 401-class error.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

// MethodNotAllowed builds a 405-class error for method on the current resource.
func MethodNotAllowed(method string) *Error {
	return &Error{Kind: KindMethodNotAllowed, Message: fmt.Sprintf("Method %q not allowed.", method)}
}

// Internal wraps an unexpected failure. The message is never shown to clients.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
