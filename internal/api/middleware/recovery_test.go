package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/sessionflow/internal/testutil"
)

func TestCommonLogsPanicWithRequestID(t *testing.T) {
	logger, logs := testutil.CaptureLogger()

	r := mux.NewRouter()
	r.Use(Common(logger)...)
	r.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("X-Request-ID", "rid-123")
	rr := httptest.NewRecorder()
	require.NotPanics(t, func() { r.ServeHTTP(rr, req) })

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "rid-123", rr.Header().Get("X-Request-ID"))

	var panicLine, accessLine string
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		switch {
		case strings.Contains(line, `"msg":"panic recovered"`):
			panicLine = line
		case strings.Contains(line, `"msg":"http request"`):
			accessLine = line
		}
	}

	require.NotEmpty(t, panicLine)
	assert.Contains(t, panicLine, `"request_id":"rid-123"`)
	require.NotEmpty(t, accessLine)
	assert.Contains(t, accessLine, `"status":500`)
	assert.Contains(t, accessLine, `"request_id":"rid-123"`)
}
