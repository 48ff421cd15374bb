// Package errs provides standardized error types for the cargo application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ObjectNotFoundError: For when a referenced entity cannot be found
//   - InvalidStateError: For when an operation is disallowed by the current lifecycle state
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - Other specialized error types for specific validation failures
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The sentinels map one-to-one onto the transport-level taxonomy: not found,
// invalid state, validation failure. Anything that does not unwrap to a
// sentinel is treated as an internal failure at the HTTP edge.
package errs
