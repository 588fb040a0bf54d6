package session

import (
	"fmt"
	"net/http"

	"github.com/mcoot/sessionflow/internal/model"
)

// Operation names used in errors and logs
const (
	OpBootstrap = "bootstrap"
	OpLogin     = "login"
	OpRegister  = "register"
	OpLogout    = "logout"
)

// Reasons shown when the identity service does not supply a message
var defaultReasons = map[string]string{
	OpLogin:    "Login failed",
	OpRegister: "Registration failed",
	OpLogout:   "Logout failed",
}

// SubmissionError is the normalized failure of a login, register or logout.
// It matches the model sentinel for its kind with errors.Is.
type SubmissionError struct {
	Op         string
	Kind       model.FailureKind
	Reason     string
	StatusCode int
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed (%d): %s", e.Op, e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Reason)
}

func (e *SubmissionError) Unwrap() []error {
	errs := []error{kindSentinel(e.Kind)}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// State returns the submission state this error represents
func (e *SubmissionError) State() model.SubmissionState {
	return model.Failed(e.Kind, e.Reason)
}

func kindSentinel(kind model.FailureKind) error {
	switch kind {
	case model.FailureValidation:
		return model.ErrValidation
	case model.FailureCredential:
		return model.ErrCredentials
	case model.FailureConflict:
		return model.ErrConflict
	default:
		return model.ErrTransport
	}
}

// classify maps an identity service status code to a failure kind.
// Codes outside the contract are service faults and reported like transport errors.
func classify(statusCode int) model.FailureKind {
	switch statusCode {
	case http.StatusBadRequest:
		return model.FailureValidation
	case http.StatusUnauthorized:
		return model.FailureCredential
	case http.StatusConflict:
		return model.FailureConflict
	default:
		return model.FailureTransport
	}
}

// outcomeError builds the error for a business failure outcome
func outcomeError(op string, outcome *model.RemoteOutcome) *SubmissionError {
	reason := outcome.Message
	if reason == "" {
		reason = defaultReasons[op]
	}
	return &SubmissionError{
		Op:         op,
		Kind:       classify(outcome.StatusCode),
		Reason:     reason,
		StatusCode: outcome.StatusCode,
	}
}

// transportFailure builds the error for a round trip that produced no outcome
func transportFailure(op string, err error) *SubmissionError {
	return &SubmissionError{
		Op:     op,
		Kind:   model.FailureTransport,
		Reason: model.TransportReason,
		Err:    err,
	}
}
