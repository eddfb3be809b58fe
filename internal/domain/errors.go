package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is against a returned *Error.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrUnresolved         = errors.New("unresolved reference")
	ErrInvalidReference   = errors.New("invalid reference")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrValidation         = errors.New("validation failed")
	ErrPreconditionFailed = errors.New("precondition failed")
)

// Error carries enough context for the caller to render a message.
type Error struct {
	Kind   error
	Entity string
	ID     string
	Field  string
	Msg    string
}

func (e *Error) Error() string {
	s := e.Kind.Error()
	if e.Entity != "" {
		s = e.Entity + " " + s
	}
	if e.ID != "" {
		s += fmt.Sprintf(" (id=%s)", e.ID)
	}
	if e.Field != "" {
		s += fmt.Sprintf(" field=%s", e.Field)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

func (e *Error) Unwrap() error { return e.Kind }

func NotFound(entity, id string) *Error {
	return &Error{Kind: ErrNotFound, Entity: entity, ID: id}
}

func Conflict(entity, id string) *Error {
	return &Error{Kind: ErrConflict, Entity: entity, ID: id, Msg: "id already exists"}
}

func Invalid(entity, id, field, msg string) *Error {
	return &Error{Kind: ErrValidation, Entity: entity, ID: id, Field: field, Msg: msg}
}

func InvalidReference(entity, id, field, ref string) *Error {
	return &Error{Kind: ErrInvalidReference, Entity: entity, ID: id, Field: field, Msg: fmt.Sprintf("%q does not resolve", ref)}
}

func InvalidTransition(id, from, to string) *Error {
	return &Error{Kind: ErrInvalidTransition, Entity: "order", ID: id, Field: "status", Msg: fmt.Sprintf("%s -> %s", from, to)}
}

func Precondition(entity, id, msg string) *Error {
	return &Error{Kind: ErrPreconditionFailed, Entity: entity, ID: id, Msg: msg}
}

// AsError returns the *Error inside err, if any.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
