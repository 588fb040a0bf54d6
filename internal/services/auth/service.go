package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/sessionflow/internal/dependencies/clock"
	"github.com/mcoot/sessionflow/internal/dependencies/random"
	"github.com/mcoot/sessionflow/internal/model"
	"github.com/mcoot/sessionflow/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// tokenPrefix marks session tokens issued by this service
const tokenPrefix = "sess_"

// Session is an issued session together with the user it belongs to
type Session struct {
	model.Session
	User model.User
}

// Service handles accounts and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random

	sessionDuration time.Duration
	passwordCost    int
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
	// PasswordCost is the bcrypt cost factor
	PasswordCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
		PasswordCost:    bcrypt.DefaultCost,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	if cfg.PasswordCost == 0 {
		cfg.PasswordCost = DefaultConfig().PasswordCost
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		random:          random,
		sessionDuration: cfg.SessionDuration,
		passwordCost:    cfg.PasswordCost,
	}
}

// NormalizeEmail returns the canonical form used for lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and a session for it
func (s *Service) Register(ctx context.Context, fullName, email, password string) (*Session, error) {
	email = NormalizeEmail(email)

	// Fast path; CreateAccount still enforces uniqueness under concurrency
	_, err := s.storage.GetAccountByEmail(ctx, email)
	if err == nil {
		return nil, model.ErrEmailExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.clock.Now()
	account := &model.Account{
		UserID:       model.UserID(uuid.NewString()),
		FullName:     strings.TrimSpace(fullName),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	return s.createSession(ctx, account)
}

// Login authenticates an account and creates a session
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	account, err := s.storage.GetAccountByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(ctx, account)
}

// Resolve returns the live session for a token
func (s *Service) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, model.ErrInvalidSession
	}

	session, err := s.storage.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, model.ErrInvalidSession
		}
		return nil, err
	}

	if session.Expired(s.clock.Now()) {
		_ = s.storage.DeleteSession(ctx, token)
		return nil, model.ErrInvalidSession
	}

	account, err := s.storage.GetAccount(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidSession
		}
		return nil, err
	}

	return &Session{Session: *session, User: account.User()}, nil
}

// Logout removes a session. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.storage.DeleteSession(ctx, token)
}

// createSession issues a new session for an account
func (s *Service) createSession(ctx context.Context, account *model.Account) (*Session, error) {
	now := s.clock.Now()

	session := model.Session{
		Token:     s.random.Token(tokenPrefix),
		UserID:    account.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	if err := s.storage.SaveSession(ctx, &session); err != nil {
		return nil, err
	}

	return &Session{Session: session, User: account.User()}, nil
}
