// Package common provides shared utilities and error types used across the
// application.
package common

import "errors"

// Sentinel errors shared across packages.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMissingColumn indicates a mandatory input column is absent. This is
	// a configuration error: the run aborts with no partial output.
	ErrMissingColumn = errors.New("missing required column")

	// ErrUnsupportedFormat indicates an input or export file format the
	// application does not handle.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrInvalidConfig indicates a malformed configuration value.
	ErrInvalidConfig = errors.New("invalid configuration")
)
