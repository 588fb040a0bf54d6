package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/sessionflow/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func newAccount(id model.UserID, email string) *model.Account {
	return &model.Account{
		UserID:       id,
		FullName:     "Alice",
		Email:        email,
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}
}

// Account tests

func (s *StorageSuite) TestCreateAndGetAccount() {
	err := s.storage.CreateAccount(s.ctx, newAccount("u1", "a@b.com"))
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAccount(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal("a@b.com", retrieved.Email)
	s.Equal("hash123", retrieved.PasswordHash)
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

	_, err = s.storage.GetAccount(s.ctx, "u2")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestReturnedAccountIsACopy() {
	_ = s.storage.CreateAccount(s.ctx, newAccount("u1", "a@b.com"))

	retrieved, _ := s.storage.GetAccount(s.ctx, "u1")
	retrieved.FullName = "Mallory"

	again, _ := s.storage.GetAccount(s.ctx, "u1")
	s.Equal("Alice", again.FullName)
}

// Session tests

func (s *StorageSuite) TestSaveGetDeleteSession() {
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

	s.Require().NoError(s.storage.DeleteSession(s.ctx, "sess_1"))
	_, err = s.storage.GetSession(s.ctx, "sess_1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteMissingSessionIsNoop() {
	s.NoError(s.storage.DeleteSession(s.ctx, "nonexistent"))
}
