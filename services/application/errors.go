package application

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Kind classifies lifecycle errors so the HTTP layer can map them to status
// codes without string matching.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindValidation   Kind = "validation_error"
	KindInvalidState Kind = "invalid_state"
	KindUnavailable  Kind = "unavailable"
)

// Error is the structured result of a rejected lifecycle operation. Meta
// carries extra response fields (e.g. the existing application on a
// duplicate create).
type Error struct {
	Kind    Kind
	Message string
	Meta    map[string]interface{}
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

// KindOf extracts the error kind, defaulting to Unavailable for anything
// that is not a structured lifecycle error.
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindUnavailable
}

// MetaOf returns the structured error's meta fields, if any.
func MetaOf(err error) map[string]interface{} {
	var le *Error
	if errors.As(err, &le) {
		return le.Meta
	}
	return nil
}

func notFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func invalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

func unavailable(message string, err error) *Error {
	return &Error{Kind: KindUnavailable, Message: message, Err: err}
}

// wrapDB translates storage errors into the lifecycle taxonomy. Record
// absence becomes NotFound, unique violations become Conflict, timeouts and
// everything else surface as Unavailable.
func wrapDB(err error, notFoundMessage string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound(notFoundMessage)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return conflict("record already exists")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return unavailable("storage timeout", err)
	case strings.Contains(err.Error(), "UNIQUE constraint failed"),
		strings.Contains(err.Error(), "duplicate key value"):
		return conflict("record already exists")
	default:
		return unavailable("storage error", err)
	}
}
