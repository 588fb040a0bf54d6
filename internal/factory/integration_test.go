package factory

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/sessionflow/internal/model"
	"github.com/mcoot/sessionflow/internal/navigation"
	"github.com/mcoot/sessionflow/internal/session"
	"github.com/mcoot/sessionflow/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app    *TestApp
	server *httptest.Server
	client *ClientApp
	ctx    context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.server = httptest.NewServer(s.app.Router(false))
	s.ctx = context.Background()
	s.client = s.newClient()
}

func (s *IntegrationSuite) TearDownTest() {
	s.server.Close()
}

func (s *IntegrationSuite) newClient() *ClientApp {
	client, err := NewClient(ClientConfig{BaseURL: s.server.URL, Logger: testutil.NopLogger()})
	s.Require().NoError(err)
	return client
}

var profile = model.RegistrationProfile{FullName: "A", Email: "a@b.com", Password: "password123"}

// Scenario: first visit with no session lands on anonymous
func (s *IntegrationSuite) TestBootstrapWithoutSession() {
	s.Require().NoError(s.client.Controller.Bootstrap(s.ctx))

	s.False(s.client.Store.Current().IsAuthenticated())
	s.Equal(session.PhaseAnonymous, s.client.Controller.Phase())
	s.Equal(navigation.RouteSignIn, s.client.Gate.GetStarted())
}

// Scenario: register establishes the session from the 201 payload
func (s *IntegrationSuite) TestRegisterThenRevisit() {
	s.Require().NoError(s.client.Controller.Bootstrap(s.ctx))

	var redirects []navigation.Redirect
	s.client.Gate.Watch(func(r navigation.Redirect) { redirects = append(redirects, r) })

	s.Require().NoError(s.client.Controller.Register(s.ctx, profile))

	user, ok := s.client.Store.Current().User()
	s.Require().True(ok)
	s.Equal("A", user.FullName)
	s.Equal("a@b.com", user.Email)
	s.Equal([]navigation.Redirect{{To: navigation.RouteHome, Reason: navigation.ReasonLogin}}, redirects)

	// a new client carrying the same cookies resumes the session
	revisit := s.newClient()
	revisit.Identity.SetCookies(s.client.Identity.Cookies())
	s.Require().NoError(revisit.Controller.Bootstrap(s.ctx))
	s.Equal(user.UserID, revisit.Store.Current().UserID())
	s.Equal(navigation.RouteDashboard, revisit.Gate.GetStarted())
}

// Scenario: wrong password fails inline and keeps the user anonymous
func (s *IntegrationSuite) TestLoginWithWrongPassword() {
	_, err := s.app.AuthService.Register(s.ctx, "A", "a@b.com", "password123")
	s.Require().NoError(err)
	s.Require().NoError(s.client.Controller.Bootstrap(s.ctx))

	err = s.client.Controller.Login(s.ctx, model.Credentials{Email: "a@b.com", Password: "wrong-password"})

	s.ErrorIs(err, model.ErrCredentials)
	state := s.client.Controller.Submission()
	s.Equal(model.SubmissionFailed, state.Status)
	s.Equal(model.FailureCredential, state.Kind)
	s.NotEmpty(state.Reason)
	s.False(s.client.Store.Current().IsAuthenticated())
}

// Scenario: duplicate registration is a conflict
func (s *IntegrationSuite) TestRegisterDuplicateEmail() {
	_, err := s.app.AuthService.Register(s.ctx, "A", "a@b.com", "password123")
	s.Require().NoError(err)
	s.Require().NoError(s.client.Controller.Bootstrap(s.ctx))

	err = s.client.Controller.Register(s.ctx, profile)

	s.ErrorIs(err, model.ErrConflict)
	s.Equal(model.FailureConflict, s.client.Controller.Submission().Kind)
	s.False(s.client.Store.Current().IsAuthenticated())
}

// Scenario: server-side validation surfaces as a validation failure
func (s *IntegrationSuite) TestRegisterInvalidProfile() {
	err := s.client.Controller.Register(s.ctx, model.RegistrationProfile{FullName: "A", Email: "nope", Password: "x"})

	s.ErrorIs(err, model.ErrValidation)
	s.Contains(s.client.Controller.Submission().Reason, "email")
}

// Scenario: login, logout, logout again
func (s *IntegrationSuite) TestLoginLogoutRoundTrip() {
	_, err := s.app.AuthService.Register(s.ctx, "A", "a@b.com", "password123")
	s.Require().NoError(err)
	s.Require().NoError(s.client.Controller.Bootstrap(s.ctx))

	s.Require().NoError(s.client.Controller.Login(s.ctx, profile.Credentials()))
	s.True(s.client.Store.Current().IsAuthenticated())
	s.Equal(navigation.RouteHome, s.client.Gate.Resolve(navigation.RouteSignIn))

	s.Require().NoError(s.client.Controller.Logout(s.ctx))
	s.False(s.client.Store.Current().IsAuthenticated())
	s.Equal(navigation.RouteSignIn, s.client.Gate.Resolve(navigation.RouteDashboard))

	s.Require().NoError(s.client.Controller.Logout(s.ctx))
	s.False(s.client.Store.Current().IsAuthenticated())

	// the server no longer knows the session either
	s.Require().NoError(s.client.Controller.Bootstrap(s.ctx))
	s.False(s.client.Store.Current().IsAuthenticated())
}

// Scenario: identity service unreachable
func (s *IntegrationSuite) TestServiceDown() {
	s.server.Close()

	s.Require().NoError(s.client.Controller.Bootstrap(s.ctx))
	s.False(s.client.Store.Current().IsAuthenticated())

	err := s.client.Controller.Login(s.ctx, profile.Credentials())
	s.ErrorIs(err, model.ErrTransport)
	s.Equal(model.Failed(model.FailureTransport, model.TransportReason), s.client.Controller.Submission())
}
