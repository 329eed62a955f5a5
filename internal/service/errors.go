package service

import (
	"errors"
	"fmt"

	"github.com/geocoder89/fittrack/internal/domain"
)

type Kind string

const (
	KindValidation     Kind = "validation"
	KindConflict       Kind = "conflict"
	KindAuthentication Kind = "authentication"
	KindNotFound       Kind = "not_found"
	KindInternal       Kind = "internal"
)

// Error is the only error type services return to the transport.
type Error struct {
	Kind    Kind
	Code    string // optional machine-readable code, e.g. email_taken
	Message string
	Field   string // set for field-level validation failures
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func validation(err error) error {
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		return &Error{Kind: KindValidation, Message: fe.Error(), Field: fe.Field, Err: err}
	}
	return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
}

func notFound(what string, err error) error {
	return &Error{Kind: KindNotFound, Message: what + " not found", Err: err}
}

func internal(op string, err error) error {
	return &Error{Kind: KindInternal, Message: "failed to " + op, Err: err}
}

// fromDomain keeps field errors as validation failures and wraps anything else.
func fromDomain(op string, err error) error {
	if domain.IsFieldError(err) {
		return validation(err)
	}
	return internal(op, err)
}
