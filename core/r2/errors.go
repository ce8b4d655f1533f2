package r2

import (
	"errors"
	"fmt"
)

// Error kinds returned by Builder and Client. Operation errors wrap both the
// kind and the underlying cause, so errors.Is works for either.
var (
	ErrMissingField       = errors.New("missing required field")
	ErrBucketOp           = errors.New("bucket operation failed")
	ErrObjectOp           = errors.New("object operation failed")
	ErrInvalidDestination = errors.New("invalid download destination")
	ErrIO                 = errors.New("local i/o failure")
)

// MissingFieldError is returned by Build when a required field was never set.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
}

// Is reports whether target is ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
