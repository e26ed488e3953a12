package core

import (
	"errors"
	"fmt"
)

// Sentinel causes. Wrap them in the typed errors below so callers can match
// on either the category (errors.As) or the precise cause (errors.Is).
var (
	ErrNameRequired     = errors.New("required field: name")
	ErrInvalidQuantity  = errors.New("invalid quantity: must be a positive whole number")
	ErrInvalidDirection = errors.New("invalid direction: must be in or out")
	ErrEmptySelection   = errors.New("empty selection: no products selected")
	ErrEmptyCSV         = errors.New("empty file: csv has no usable rows")
	ErrNotFound         = errors.New("product not found")
)

// ValidationError reports user input that was rejected before touching the store.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %v", e.Err)
	}
	return fmt.Sprintf("validation: %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ParseError reports CSV input that could not be imported.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// NotFoundError reports an operation on a product id that is no longer present.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("product not found: %s", e.ID) }

// Is lets errors.Is(err, ErrNotFound) match any NotFoundError.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsParse reports whether err is a ParseError.
func IsParse(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsNotFound reports whether err refers to a missing product.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
