package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	ErrMissingColumn     = errors.New("required column missing")
	ErrNotNumeric        = errors.New("column is not numeric")
	ErrNoObservations    = errors.New("no observations to fit")
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)

// NewMissingColumnError lists every absent column in one error
func NewMissingColumnError(columns []string) error {
	return fmt.Errorf("%w: [%s] not in index", ErrMissingColumn, strings.Join(columns, ", "))
}

// NewNotNumericError reports a column whose inferred type cannot enter the model
func NewNotNumericError(column, inferred string) error {
	return fmt.Errorf("%w: %s has type %s", ErrNotNumeric, column, inferred)
}

// IsDataError reports whether err stems from the shape or content of the input table
func IsDataError(err error) bool {
	return errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrNotNumeric) ||
		errors.Is(err, ErrNoObservations)
}
