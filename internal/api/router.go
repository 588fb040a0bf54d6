package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/sessionflow/internal/api/handler"
	"github.com/mcoot/sessionflow/internal/api/middleware"
	"github.com/mcoot/sessionflow/internal/api/response"
	"github.com/mcoot/sessionflow/internal/services/auth"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	AuthService  *auth.Service
	SecureCookie bool
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedHandler)

	sessionHandler := handler.NewSessionHandler(cfg.AuthService, handler.CookieConfig{Secure: cfg.SecureCookie}, cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Common(cfg.Logger)...)

	// Health is registered before the session subrouter: a later failed
	// match would otherwise discard the subrouter's 405
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Session routes resolve the caller's session but never require one
	sessions := api.PathPrefix("/session").Subrouter()
	sessions.Use(middleware.Session(cfg.AuthService))
	sessions.HandleFunc("", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/login", sessionHandler.Login).Methods(http.MethodPost)
	sessions.HandleFunc("/register", sessionHandler.Register).Methods(http.MethodPost)
	sessions.HandleFunc("/logout", sessionHandler.Logout).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	response.Message(w, http.StatusNotFound, "Not found")
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	response.Message(w, http.StatusMethodNotAllowed, "Method not allowed")
}
