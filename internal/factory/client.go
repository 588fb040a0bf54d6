package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/sessionflow/internal/identity"
	"github.com/mcoot/sessionflow/internal/navigation"
	"github.com/mcoot/sessionflow/internal/session"
)

// ClientApp contains the wired session client components
type ClientApp struct {
	Identity   *identity.HTTPClient
	Store      *session.Store
	Controller *session.Controller
	Gate       *navigation.Gate
}

// ClientConfig holds configuration for the client factory
type ClientConfig struct {
	// BaseURL is the identity service URL
	BaseURL string
	// Timeout bounds each request (optional)
	Timeout time.Duration
	// Logger is the client logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// NewClient creates a session client wired against the identity service.
// The controller starts in the bootstrapping phase; callers run Bootstrap.
func NewClient(cfg ClientConfig) (*ClientApp, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	httpClient, err := identity.NewHTTPClient(identity.HTTPConfig{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	store := session.NewStore(logger)

	return &ClientApp{
		Identity:   httpClient,
		Store:      store,
		Controller: session.NewController(httpClient, store, logger),
		Gate:       navigation.NewGate(store),
	}, nil
}
