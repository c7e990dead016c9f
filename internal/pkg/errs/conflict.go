package errs

import (
	"errors"
	"fmt"
)

// ErrConflict is the sentinel for operations that lost a race or attempted an
// illegal state transition: claiming a delivery that is no longer available,
// or moving a status backwards outside the cancellation-reopen path.
var ErrConflict = errors.New("conflict")

// ConflictError reports why the conflicting operation on the named entity was
// rejected. The entity's current state is left untouched.
type ConflictError struct {
	ParamName string
	Reason    string
	Cause     error
}

// NewConflictError creates a ConflictError without an underlying cause.
func NewConflictError(paramName, reason string) *ConflictError {
	return &ConflictError{ParamName: paramName, Reason: reason}
}

// NewConflictErrorWithCause creates a ConflictError wrapping the error that
// exposed the conflict.
func NewConflictErrorWithCause(paramName, reason string, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Reason: reason, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s (cause: %s)", ErrConflict, e.ParamName, e.Reason, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s: %s", ErrConflict, e.ParamName, e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
