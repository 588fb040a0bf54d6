package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mcoot/sessionflow/internal/identity"
	"github.com/mcoot/sessionflow/internal/model"
)

// MockIdentityClient is a testify mock of identity.Client
type MockIdentityClient struct {
	mock.Mock
}

// Ensure MockIdentityClient implements Client
var _ identity.Client = (*MockIdentityClient)(nil)

func (m *MockIdentityClient) StartSession(ctx context.Context) (*model.RemoteOutcome, error) {
	args := m.Called(ctx)
	return outcomeArg(args, 0), args.Error(1)
}

func (m *MockIdentityClient) Login(ctx context.Context, creds model.Credentials) (*model.RemoteOutcome, error) {
	args := m.Called(ctx, creds)
	return outcomeArg(args, 0), args.Error(1)
}

func (m *MockIdentityClient) Register(ctx context.Context, profile model.RegistrationProfile) (*model.RemoteOutcome, error) {
	args := m.Called(ctx, profile)
	return outcomeArg(args, 0), args.Error(1)
}

func (m *MockIdentityClient) Logout(ctx context.Context) (*model.RemoteOutcome, error) {
	args := m.Called(ctx)
	return outcomeArg(args, 0), args.Error(1)
}

func outcomeArg(args mock.Arguments, i int) *model.RemoteOutcome {
	if v := args.Get(i); v != nil {
		return v.(*model.RemoteOutcome)
	}
	return nil
}
