package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/mcoot/sessionflow/internal/model"
)

// Endpoint paths of the identity service
const (
	PathSession  = "/api/v1/session"
	PathLogin    = "/api/v1/session/login"
	PathRegister = "/api/v1/session/register"
	PathLogout   = "/api/v1/session/logout"
	PathHealth   = "/api/v1/health"
)

// maxBodySize bounds how much of a response body is read
const maxBodySize = 1 << 20

// HTTPConfig holds configuration for the HTTP identity client
type HTTPConfig struct {
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger
}

// DefaultHTTPConfig returns the default client configuration
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		BaseURL: "http://localhost:8080",
		Timeout: 30 * time.Second,
	}
}

// HTTPClient is a Client speaking the JSON envelope protocol over HTTP.
// The session travels in cookies held by the client's jar.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	jar        http.CookieJar
	logger     *slog.Logger
}

// Ensure HTTPClient implements the interface
var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a new HTTP identity client
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultHTTPConfig().BaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultHTTPConfig().Timeout
	}

	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host required", cfg.BaseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	return &HTTPClient{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		},
		jar:    jar,
		logger: logger.With(slog.String("component", "identity")),
	}, nil
}

// BaseURL returns the identity service base URL
func (c *HTTPClient) BaseURL() string {
	return c.baseURL.String()
}

// Cookies returns the cookies currently held for the identity service
func (c *HTTPClient) Cookies() []*http.Cookie {
	return c.jar.Cookies(c.baseURL)
}

// SetCookies seeds the jar, e.g. with cookies saved by a previous run
func (c *HTTPClient) SetCookies(cookies []*http.Cookie) {
	c.jar.SetCookies(c.baseURL, cookies)
}

// StartSession queries the current session
func (c *HTTPClient) StartSession(ctx context.Context) (*model.RemoteOutcome, error) {
	return c.do(ctx, "start session", http.MethodGet, PathSession, nil)
}

// Login submits credentials
func (c *HTTPClient) Login(ctx context.Context, creds model.Credentials) (*model.RemoteOutcome, error) {
	return c.do(ctx, "login", http.MethodPost, PathLogin, creds)
}

// Register submits a registration profile
func (c *HTTPClient) Register(ctx context.Context, profile model.RegistrationProfile) (*model.RemoteOutcome, error) {
	return c.do(ctx, "register", http.MethodPost, PathRegister, profile)
}

// Logout ends the current session
func (c *HTTPClient) Logout(ctx context.Context) (*model.RemoteOutcome, error) {
	return c.do(ctx, "logout", http.MethodPost, PathLogout, nil)
}

// Health checks that the identity service is up
func (c *HTTPClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(PathHealth), nil)
	if err != nil {
		return transportError("health", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError("health", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return transportError("health", fmt.Errorf("HTTP %d", resp.StatusCode))
	}
	return nil
}

// do performs one round trip and decodes the envelope
func (c *HTTPClient) do(ctx context.Context, op, method, path string, body any) (*model.RemoteOutcome, error) {
	start := time.Now()

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to marshal request: %w", op, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), bodyReader)
	if err != nil {
		return nil, transportError(op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("identity request failed",
			slog.String("op", op),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return nil, transportError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, transportError(op, fmt.Errorf("failed to read response: %w", err))
	}

	var env Envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, transportError(op, fmt.Errorf("HTTP %d: non-JSON response: %w", resp.StatusCode, err))
	}

	outcome := env.Outcome(resp.StatusCode)

	c.logger.Debug("identity request",
		slog.String("op", op),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", outcome.StatusCode),
		slog.Duration("duration", time.Since(start)))

	return outcome, nil
}

func (c *HTTPClient) resolve(path string) string {
	return c.baseURL.String() + path
}
