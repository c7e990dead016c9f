// Package errs provides the typed error taxonomy shared by the marketplace core.
//
// Every failure the application surfaces belongs to one of a small set of kinds:
//
//   - ObjectNotFoundError: a referenced order or delivery does not exist
//   - ConflictError: an operation lost a race or hit an illegal state transition
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: input validation
//   - TransactionFailedError: an atomic write was aborted and rolled back
//
// Each kind follows the same pattern: a sentinel error variable (e.g. ErrConflict),
// a struct carrying the details, constructors with and without a cause, and
// Error/Unwrap methods so errors.Is can classify any wrapped failure. Transport
// adapters map the sentinels to status codes; the core only ever deals in kinds.
package errs
