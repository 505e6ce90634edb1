package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	ErrInvalidID = errors.New("invalid reservation ID format")

	ErrSpaceNotFound = errors.New("parking space not found")

	ErrDocumentNotFound = errors.New("document not found")

	// ErrVersionMismatch means the record changed between read and write;
	// the optimistic version guard refused the update.
	ErrVersionMismatch = errors.New("reservation was modified concurrently")
)
