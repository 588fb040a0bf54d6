package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/sessionflow/internal/api/response"
	"github.com/mcoot/sessionflow/internal/model"
	"github.com/mcoot/sessionflow/internal/services/auth"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{model.ErrInvalidSession, http.StatusUnauthorized},
		{fmt.Errorf("register: %w", model.ErrEmailExists), http.StatusConflict},
		{NewInvalidRequestError("email: cannot be blank."), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestWriteErrorWritesEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, model.ErrEmailExists)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var env response.Envelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	assert.Equal(t, http.StatusConflict, env.StatusCode)
	assert.Nil(t, env.Data)
	require.NotNil(t, env.Message)
	assert.Equal(t, "An account with this email already exists", *env.Message)
}

func TestInternalErrorsDoNotLeakDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("redis: connection refused"))

	assert.NotContains(t, rr.Body.String(), "redis")
}
