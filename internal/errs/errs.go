// Package errs defines the error taxonomy shared by the analysis pipeline.
// Components wrap these sentinels with context; callers use errors.Is.
package errs

import "errors"

var (
	// ErrValidation marks missing or invalid input. Never retried.
	ErrValidation = errors.New("validation failed")
	// ErrTransient marks an external service failure that survived retries.
	ErrTransient = errors.New("transient service failure")
	// ErrNotFound marks an unknown report or resource.
	ErrNotFound = errors.New("not found")
)
