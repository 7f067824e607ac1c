package utils

import (
	"errors"
	"fmt"
)

var (
	ErrorRecordNotFound        = errors.New("record not found")
	ErrValidation              = errors.New("validation failed")
	ErrConflict                = errors.New("conflict")
	ErrComputationPrecondition = errors.New("computation precondition violated")
)

// AppError wraps one of the sentinels above with the offending field and a
// human readable detail. Match it with errors.Is against the sentinel.
type AppError struct {
	Err     error
	Field   string
	Details string
}

func (e *AppError) Error() string {
	switch {
	case e.Field != "" && e.Details != "":
		return fmt.Sprintf("%s: %s %s", e.Err.Error(), e.Field, e.Details)
	case e.Details != "":
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(field string, details string) error {
	return &AppError{Err: ErrValidation, Field: field, Details: details}
}

func NewPreconditionError(field string, details string) error {
	return &AppError{Err: ErrComputationPrecondition, Field: field, Details: details}
}

func NewConflictError(details string) error {
	return &AppError{Err: ErrConflict, Details: details}
}

func NewNotFoundError(details string) error {
	return &AppError{Err: ErrorRecordNotFound, Details: details}
}
