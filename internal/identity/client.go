// Package identity talks to the remote identity service.
//
// Every operation is a single request/response round trip. Business failures
// (bad credentials, duplicate email, validation) come back as a RemoteOutcome;
// only transport faults are returned as errors, and those always match
// model.ErrTransport.
package identity

import (
	"context"

	"github.com/mcoot/sessionflow/internal/model"
)

// Client is the contract the session controller depends on
type Client interface {
	// StartSession asks whether the caller already holds a valid session.
	// The payload is present only when StatusCode is 200.
	StartSession(ctx context.Context) (*model.RemoteOutcome, error)

	// Login submits credentials. 200 with payload on success, 400/401 otherwise.
	Login(ctx context.Context, creds model.Credentials) (*model.RemoteOutcome, error)

	// Register creates an account and establishes a session.
	// 201 with payload on success, 409 on duplicate email, 400 on validation failure.
	Register(ctx context.Context, profile model.RegistrationProfile) (*model.RemoteOutcome, error)

	// Logout ends the session. Idempotent: 200 even without an active session.
	Logout(ctx context.Context) (*model.RemoteOutcome, error)
}
