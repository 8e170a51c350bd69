package domain

import (
	"errors"
	"fmt"
)

// Kind classifies why an inventory operation failed
type Kind string

const (
	// KindNotFound means a referenced company, office, group or host does not exist
	KindNotFound Kind = "not_found"
	// KindAlreadyExists means the entity would duplicate an existing one
	KindAlreadyExists Kind = "already_exists"
	// KindMissingArgument means a required identifying argument was empty
	KindMissingArgument Kind = "missing_argument"
	// KindConstraintViolation means the store rejected the commit
	KindConstraintViolation Kind = "constraint_violation"
)

// Sentinels for errors.Is
var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrMissingArgument     = errors.New("missing argument")
	ErrConstraintViolation = errors.New("constraint violation")
)

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindAlreadyExists:
		return ErrAlreadyExists
	case KindMissingArgument:
		return ErrMissingArgument
	case KindConstraintViolation:
		return ErrConstraintViolation
	default:
		return nil
	}
}

// Error is a tagged inventory failure
type Error struct {
	Kind   Kind
	Entity EntityType
	// Name identifies what was looked up or written, e.g. "Acme/Austin"
	Name string
	// Err is the underlying cause, usually a store error
	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %q: %s", e.Entity, e.Name, e.Kind.sentinel())
	if e.Kind.sentinel() == nil {
		msg = fmt.Sprintf("%s %q: %s", e.Entity, e.Name, e.Kind)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// NotFound builds a KindNotFound error
func NotFound(entity EntityType, name string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Name: name}
}

// AlreadyExists builds a KindAlreadyExists error
func AlreadyExists(entity EntityType, name string) *Error {
	return &Error{Kind: KindAlreadyExists, Entity: entity, Name: name}
}

// MissingArgument builds a KindMissingArgument error; arg names the empty argument
func MissingArgument(entity EntityType, arg string) *Error {
	return &Error{Kind: KindMissingArgument, Entity: entity, Name: arg}
}

// ConstraintViolation wraps a store rejection
func ConstraintViolation(entity EntityType, name string, cause error) *Error {
	return &Error{Kind: KindConstraintViolation, Entity: entity, Name: name, Err: cause}
}
