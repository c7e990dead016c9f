package errs

import (
	"errors"
	"fmt"
)

// ErrTransactionFailed is the sentinel for atomic writes that were aborted.
// When a caller sees this kind, every write of the failed operation has been
// rolled back and no partial state remains.
var ErrTransactionFailed = errors.New("transaction failed")

// TransactionFailedError reports which operation's transaction was aborted.
type TransactionFailedError struct {
	Operation string
	Cause     error
}

// NewTransactionFailedError creates a TransactionFailedError for the named
// operation, wrapping the error returned by the persistence layer.
func NewTransactionFailedError(operation string, cause error) *TransactionFailedError {
	return &TransactionFailedError{Operation: operation, Cause: cause}
}

func (e *TransactionFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrTransactionFailed, e.Operation, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrTransactionFailed, e.Operation)
}

func (e *TransactionFailedError) Unwrap() error {
	return ErrTransactionFailed
}
