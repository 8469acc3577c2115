package errors

import "errors"

// Sentinel errors shared by every layer. Services wrap these with fmt.Errorf("%w")
// and the API layer maps them to HTTP responses with errors.Is.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that client input failed a business rule.
	// Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation conflicts with the current state
	// of a resource. Mapped to 409 Conflict.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies that the caller may not perform the action.
	// Mapped to 403 Forbidden.
	ErrPermission = errors.New("permission denied")

	// ErrInternal is the generic server-side failure. Mapped to 500.
	ErrInternal = errors.New("internal server error")

	// ErrCredential covers a missing, non-regular, empty or unreadable
	// service-account credential file.
	ErrCredential = errors.New("invalid credentials")

	// ErrBackend covers spreadsheet backend failures: authorization, network,
	// malformed sheet identifiers and quota.
	ErrBackend = errors.New("spreadsheet backend error")

	// ErrInput is reserved for malformed transcripts. Nothing raises it today:
	// row building degrades instead of failing.
	ErrInput = errors.New("invalid input")
)
