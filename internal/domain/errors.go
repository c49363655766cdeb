package domain

import "errors"

// Sentinel errors shared by every service. Wrap them with fmt.Errorf("...: %w")
// and match with errors.Is.
var (
	// ErrInvalidInput indicates the request payload failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
)
