package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrLoad            = errors.New("load error")
	ErrParse           = errors.New("parse error")
	ErrNotFound        = errors.New("not found")
	ErrNotReady        = errors.New("sources not ready")
	ErrUnknownField    = errors.New("unknown field")
	ErrUnknownLanguage = errors.New("unknown language")
	ErrValidation      = errors.New("validation error")
)

// ParseError describes a raw item that could not be turned into a record.
type ParseError struct {
	Kind   string // record kind, e.g. "move"
	ID     string // raw identifier, may be empty
	Field  string // offending field, may be empty
	Reason string
}

func (e *ParseError) Error() string {
	switch {
	case e.Field != "" && e.ID != "":
		return fmt.Sprintf("parse %s %q: %s: %s", e.Kind, e.ID, e.Field, e.Reason)
	case e.ID != "":
		return fmt.Sprintf("parse %s %q: %s", e.Kind, e.ID, e.Reason)
	case e.Field != "":
		return fmt.Sprintf("parse %s: %s: %s", e.Kind, e.Field, e.Reason)
	default:
		return fmt.Sprintf("parse %s: %s", e.Kind, e.Reason)
	}
}

func (e *ParseError) Unwrap() error { return ErrParse }

// NewParseError creates a ParseError for the given kind and identifier.
func NewParseError(kind, id, field, reason string) *ParseError {
	return &ParseError{Kind: kind, ID: id, Field: field, Reason: reason}
}

// UnknownFieldError reports a field name that a record kind does not have.
func UnknownFieldError(kind, field string) error {
	return fmt.Errorf("%w: %s has no field %q", ErrUnknownField, kind, field)
}
