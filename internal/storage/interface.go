package storage

import (
	"context"

	"github.com/mcoot/sessionflow/internal/model"
)

// Storage defines the interface for identity service persistence
type Storage interface {
	// Account operations

	// CreateAccount stores a new account, failing with model.ErrEmailExists
	// if the email is already taken
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id model.UserID) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
}
