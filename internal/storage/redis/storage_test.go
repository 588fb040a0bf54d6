package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/sessionflow/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func newAccount(id model.UserID, email string) *model.Account {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Account{
		UserID:       id,
		FullName:     "Alice",
		Email:        email,
		PasswordHash: "hash123",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Account tests

func (s *StorageSuite) TestCreateAndGetAccount() {
	account := newAccount("u1", "a@b.com")
	s.Require().NoError(s.storage.CreateAccount(s.ctx, account))

	retrieved, err := s.storage.GetAccount(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(account.Email, retrieved.Email)
	s.Equal(account.PasswordHash, retrieved.PasswordHash)
	s.True(account.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestGetAccountByEmail() {
	_ = s.storage.CreateAccount(s.ctx, newAccount("u1", "a@b.com"))

	retrieved, err := s.storage.GetAccountByEmail(s.ctx, "a@b.com")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), retrieved.UserID)
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccount(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)

	_, err = s.storage.GetAccountByEmail(s.ctx, "nobody@b.com")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestCreateAccountDuplicateEmail() {
	s.Require().NoError(s.storage.CreateAccount(s.ctx, newAccount("u1", "a@b.com")))

	err := s.storage.CreateAccount(s.ctx, newAccount("u2", "a@b.com"))
	s.ErrorIs(err, model.ErrEmailExists)

	// the index still points at the first account
	retrieved, err := s.storage.GetAccountByEmail(s.ctx, "a@b.com")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), retrieved.UserID)
	s.False(s.mini.Exists(accountKey("u2")))
}

func (s *StorageSuite) TestAccountsHaveNoTTL() {
	_ = s.storage.CreateAccount(s.ctx, newAccount("u1", "a@b.com"))

	s.Equal(time.Duration(0), s.mini.TTL(accountKey("u1")))
	s.Equal(time.Duration(0), s.mini.TTL(emailIndexKey("a@b.com")))
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	session := &model.Session{
		Token:     "sess_1",
		UserID:    "u1",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	retrieved, err := s.storage.GetSession(s.ctx, "sess_1")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), retrieved.UserID)
}

func (s *StorageSuite) TestSessionTTL() {
	_ = s.storage.SaveSession(s.ctx, &model.Session{Token: "sess_1", UserID: "u1"})

	s.Equal(time.Hour, s.mini.TTL(sessionKey("sess_1")))

	s.mini.FastForward(2 * time.Hour)
	_, err := s.storage.GetSession(s.ctx, "sess_1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	_ = s.storage.SaveSession(s.ctx, &model.Session{Token: "sess_1", UserID: "u1"})

	s.Require().NoError(s.storage.DeleteSession(s.ctx, "sess_1"))

	_, err := s.storage.GetSession(s.ctx, "sess_1")
	s.ErrorIs(err, model.ErrSessionNotFound)

	// deleting again is a no-op
	s.NoError(s.storage.DeleteSession(s.ctx, "sess_1"))
}

func (s *StorageSuite) TestKeyPrefix() {
	s.Equal("sessionflow:account:u1", accountKey("u1"))
	s.Equal("sessionflow:idx:email:a@b.com", emailIndexKey("a@b.com"))
	s.Equal("sessionflow:session:tok", sessionKey("tok"))
}
