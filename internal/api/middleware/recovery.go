package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/sessionflow/internal/api/apierr"
	"github.com/mcoot/sessionflow/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// Panics become a 500 envelope.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

// Logging creates request logging middleware for the API
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}

// Common returns the middleware every API route runs, outermost first.
// Logging wraps Recovery so a panic log carries the request id and the
// request still gets its access log line.
func Common(logger *slog.Logger) []mux.MiddlewareFunc {
	return []mux.MiddlewareFunc{Logging(logger), Recovery(logger)}
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
