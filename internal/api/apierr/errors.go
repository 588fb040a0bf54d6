package apierr

import (
	"errors"
	"net/http"

	"github.com/mcoot/sessionflow/internal/api/response"
	"github.com/mcoot/sessionflow/internal/model"
	"github.com/mcoot/sessionflow/internal/services/auth"
)

// httpError combines an HTTP status code with the envelope message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error envelope to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	response.Message(w, he.status, he.message)
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, "Invalid email or password"}
	case errors.Is(err, model.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, "No active session"}
	case errors.Is(err, model.ErrEmailExists):
		return &httpError{http.StatusConflict, "An account with this email already exists"}
	default:
		return &httpError{http.StatusInternalServerError, "Internal server error"}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Internal server error"}
}
