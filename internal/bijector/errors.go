package bijector

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidParameter = errors.New("invalid bijector parameter")
	ErrDTypeMismatch    = errors.New("parameter dtypes do not match")
)

// ParameterError reports a parameter that failed argument validation.
type ParameterError struct {
	Bijector string // Name of the bijector that ran the check
	Param    string // Parameter name (e.g., "scale")
	Index    int    // Flat index of the first offending element
	Message  string
}

// Error implements the error interface.
func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s (%s[%d])", e.Bijector, e.Message, e.Param, e.Index)
}

// Unwrap makes errors.Is(err, ErrInvalidParameter) hold.
func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}
