package model

import "errors"

// Common errors used across the application
var (
	// Submission failures, as seen by the session client
	ErrValidation         = errors.New("validation failed")
	ErrCredentials        = errors.New("invalid credentials")
	ErrConflict           = errors.New("account already exists")
	ErrTransport          = errors.New("identity service unreachable")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")

	// Identity service errors
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrInvalidSession  = errors.New("invalid or expired session")
	ErrSessionNotFound = errors.New("session not found")
)
