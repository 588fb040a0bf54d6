package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/mcoot/sessionflow/internal/identity"
	"github.com/mcoot/sessionflow/internal/model"
)

// SubmissionObserver is called whenever the submission state changes
type SubmissionObserver func(prev, next model.SubmissionState)

// Controller drives the session state machine.
//
// At most one operation runs at a time. A call made while another is pending
// returns model.ErrSubmissionInFlight without contacting the identity service.
// Failures never touch the store: they only set the submission state, except
// for bootstrap, which falls back to the anonymous record.
type Controller struct {
	client identity.Client
	store  *Store
	logger *slog.Logger

	// inflight is held for the whole read-decide-commit of an operation
	inflight sync.Mutex

	mu           sync.RWMutex
	phase        Phase
	submission   model.SubmissionState
	bootstrapped bool

	submissionObservers observerList[model.SubmissionState]
}

// NewController creates a controller in the bootstrapping phase
func NewController(client identity.Client, store *Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Controller{
		client:     client,
		store:      store,
		logger:     logger.With(slog.String("component", "session")),
		phase:      PhaseBootstrapping,
		submission: model.Idle(),
	}
}

// Store returns the store the controller commits to
func (c *Controller) Store() *Store {
	return c.store
}

// Phase returns the current state machine phase
func (c *Controller) Phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase
}

// Submission returns the state of the pending or most recent submission
func (c *Controller) Submission() model.SubmissionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.submission
}

// SubscribeSubmission registers an observer of submission state changes
func (c *Controller) SubscribeSubmission(fn SubmissionObserver) (unsubscribe func()) {
	return c.submissionObservers.add(fn)
}

// Bootstrap checks for an existing session with the identity service.
//
// Service failures are never surfaced: a non-200 answer means anonymous,
// and a transport fault on the first bootstrap also means anonymous. A later
// bootstrap that cannot reach the service keeps the current record. The only
// error is model.ErrSubmissionInFlight, returned without a network call when
// another operation is pending.
func (c *Controller) Bootstrap(ctx context.Context) error {
	if !c.inflight.TryLock() {
		return model.ErrSubmissionInFlight
	}
	defer c.inflight.Unlock()

	c.mu.Lock()
	first := !c.bootstrapped
	c.bootstrapped = true
	c.mu.Unlock()

	c.setPhase(PhaseBootstrapping, OpBootstrap)

	outcome, err := c.client.StartSession(context.WithoutCancel(ctx))
	switch {
	case err != nil:
		c.logger.Warn("bootstrap could not reach identity service",
			slog.String("error", err.Error()),
			slog.Bool("first", first))
		if first {
			c.commit(model.Anonymous())
		}
	case outcome.StatusCode == http.StatusOK && outcome.HasPayload():
		c.commit(outcome.Record())
	default:
		c.logger.Debug("no existing session", slog.Int("status", outcome.StatusCode))
		c.commit(model.Anonymous())
	}

	c.settle(OpBootstrap)
	return nil
}

// Login submits credentials and, on success, replaces the session record
func (c *Controller) Login(ctx context.Context, creds model.Credentials) error {
	if !c.inflight.TryLock() {
		return model.ErrSubmissionInFlight
	}
	defer c.inflight.Unlock()

	c.begin(PhaseAuthenticating, OpLogin)

	if serr := c.login(context.WithoutCancel(ctx), OpLogin, creds); serr != nil {
		return c.fail(serr)
	}
	return c.succeed(OpLogin)
}

// Register creates an account. The 201 payload establishes the session
// directly; only a 201 without payload falls back to a login round trip.
func (c *Controller) Register(ctx context.Context, profile model.RegistrationProfile) error {
	if !c.inflight.TryLock() {
		return model.ErrSubmissionInFlight
	}
	defer c.inflight.Unlock()

	c.begin(PhaseRegistering, OpRegister)
	ctx = context.WithoutCancel(ctx)

	outcome, err := c.client.Register(ctx, profile)
	if err != nil {
		return c.fail(transportFailure(OpRegister, err))
	}
	if outcome.StatusCode != http.StatusCreated {
		return c.fail(outcomeError(OpRegister, outcome))
	}

	if outcome.HasPayload() {
		c.commit(outcome.Record())
		return c.succeed(OpRegister)
	}

	c.logger.Info("registration returned no session, logging in")
	c.setPhase(PhaseAuthenticating, OpRegister)
	if serr := c.login(ctx, OpRegister, profile.Credentials()); serr != nil {
		return c.fail(serr)
	}
	return c.succeed(OpRegister)
}

// Logout ends the session. Logging out while anonymous is not an error.
func (c *Controller) Logout(ctx context.Context) error {
	if !c.inflight.TryLock() {
		return model.ErrSubmissionInFlight
	}
	defer c.inflight.Unlock()

	wasAuthenticated := c.store.Current().IsAuthenticated()
	c.begin(PhaseLoggingOut, OpLogout)

	var serr *SubmissionError
	outcome, err := c.client.Logout(context.WithoutCancel(ctx))
	switch {
	case err != nil:
		serr = transportFailure(OpLogout, err)
	case outcome.StatusCode != http.StatusOK:
		serr = outcomeError(OpLogout, outcome)
	}

	if serr != nil {
		if wasAuthenticated {
			return c.fail(serr)
		}
		c.logger.Debug("logout failure ignored while anonymous", slog.String("error", serr.Error()))
		return c.succeed(OpLogout)
	}

	c.commit(model.Anonymous())
	return c.succeed(OpLogout)
}

// login performs the login round trip and commits on success
func (c *Controller) login(ctx context.Context, op string, creds model.Credentials) *SubmissionError {
	outcome, err := c.client.Login(ctx, creds)
	if err != nil {
		return transportFailure(op, err)
	}
	if outcome.StatusCode != http.StatusOK {
		return outcomeError(op, outcome)
	}
	if !outcome.HasPayload() {
		return &SubmissionError{
			Op:         op,
			Kind:       model.FailureTransport,
			Reason:     defaultReasons[op],
			StatusCode: outcome.StatusCode,
			Err:        errors.New("login succeeded without a user payload"),
		}
	}

	c.commit(outcome.Record())
	return nil
}

func (c *Controller) commit(record model.SessionRecord) {
	c.store.Replace(record)
}

func (c *Controller) begin(phase Phase, op string) {
	c.setPhase(phase, op)
	c.setSubmission(model.Submitting())
}

func (c *Controller) succeed(op string) error {
	c.setSubmission(model.Idle())
	c.settle(op)
	return nil
}

func (c *Controller) fail(serr *SubmissionError) error {
	c.logger.Info("submission failed",
		slog.String("op", serr.Op),
		slog.String("kind", string(serr.Kind)),
		slog.Int("status", serr.StatusCode),
		slog.String("reason", serr.Reason))

	c.setSubmission(serr.State())
	c.settle(serr.Op)
	return serr
}

// settle returns the machine to the steady phase matching the store
func (c *Controller) settle(op string) {
	c.setPhase(steadyPhase(c.store.Current()), op)
}

func (c *Controller) setPhase(phase Phase, op string) {
	c.mu.Lock()
	prev := c.phase
	c.phase = phase
	c.mu.Unlock()

	if prev != phase {
		c.logger.Debug("session transition",
			slog.String("op", op),
			slog.String("from", string(prev)),
			slog.String("to", string(phase)))
	}
}

func (c *Controller) setSubmission(state model.SubmissionState) {
	c.mu.Lock()
	prev := c.submission
	c.submission = state
	c.mu.Unlock()

	if prev != state {
		c.submissionObservers.notify(c.logger, prev, state)
	}
}
