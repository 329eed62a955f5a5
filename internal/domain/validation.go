// Package domain holds what every entity package shares: field-level
// validation failures reported with their wire field names.
package domain

import (
	"errors"
	"slices"
	"strings"

	"github.com/geocoder89/fittrack/internal/domain/calendar"
)

type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Message
}

func Required(field string) error {
	return &FieldError{Field: field, Message: "is required"}
}

func Invalid(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

func RequireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return Required(field)
	}
	return nil
}

// RequireTextIfSet is RequireText for a patch field: absent is fine, present
// must not be blank.
func RequireTextIfSet(field string, v *string) error {
	if v == nil {
		return nil
	}
	return RequireText(field, *v)
}

// ParseDate parses a required YYYY-MM-DD field.
func ParseDate(field, v string) (calendar.Date, error) {
	if strings.TrimSpace(v) == "" {
		return calendar.Date{}, Required(field)
	}

	d, err := calendar.Parse(v)
	if err != nil {
		return calendar.Date{}, Invalid(field, "must be formatted as YYYY-MM-DD")
	}
	return d, nil
}

func OneOf(field, v string, allowed ...string) error {
	if !slices.Contains(allowed, v) {
		return Invalid(field, "must be one of "+strings.Join(allowed, ", "))
	}
	return nil
}

func IsFieldError(err error) bool {
	var fe *FieldError
	return errors.As(err, &fe)
}
