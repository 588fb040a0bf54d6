package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mcoot/sessionflow/internal/api/apierr"
	"github.com/mcoot/sessionflow/internal/api/middleware"
	"github.com/mcoot/sessionflow/internal/api/request"
	"github.com/mcoot/sessionflow/internal/api/response"
	"github.com/mcoot/sessionflow/internal/services/auth"
)

// maxRequestBody bounds request bodies on the session endpoints
const maxRequestBody = 64 << 10

// CookieConfig controls the session cookie
type CookieConfig struct {
	// Secure marks the cookie HTTPS-only
	Secure bool
}

// SessionHandler handles the session endpoints
type SessionHandler struct {
	authService *auth.Service
	cookie      CookieConfig
	logger      *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(authService *auth.Service, cookie CookieConfig, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		authService: authService,
		cookie:      cookie,
		logger:      logger.With(slog.String("component", "session_handler")),
	}
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		response.Message(w, http.StatusUnauthorized, "No active session")
		return
	}

	response.Success(w, http.StatusOK, response.UserFromModel(session.User))
}

// Login handles POST /api/v1/session/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.logger.Info("login", slog.String("user_id", string(session.UserID)))
	h.setCookie(w, session.Token, session.ExpiresAt.Sub(session.CreatedAt))
	response.Success(w, http.StatusOK, response.UserFromModel(session.User))
}

// Register handles POST /api/v1/session/register
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	session, err := h.authService.Register(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.logger.Info("account registered", slog.String("user_id", string(session.UserID)))
	h.setCookie(w, session.Token, session.ExpiresAt.Sub(session.CreatedAt))
	response.Success(w, http.StatusCreated, response.UserFromModel(session.User))
}

// Logout handles POST /api/v1/session/logout. It succeeds with or without a
// session so that repeated logouts are harmless.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), middleware.GetToken(r.Context())); err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.clearCookie(w)
	response.Message(w, http.StatusOK, "Logged out")
}

// setCookie sets the session cookie. Lifetime is relative so it does not
// depend on the client's clock agreeing with ours.
func (h *SessionHandler) setCookie(w http.ResponseWriter, token string, lifetime time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(lifetime.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *SessionHandler) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type validatable interface {
	Validate() error
}

// decode reads and validates a JSON body, writing a 400 envelope on failure
func decode(w http.ResponseWriter, r *http.Request, dst validatable) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(dst); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return false
	}
	if err := dst.Validate(); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError(err.Error()))
		return false
	}
	return true
}
