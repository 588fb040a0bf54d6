package session

import "github.com/mcoot/sessionflow/internal/model"

// Phase is the controller's position in the session state machine
type Phase string

const (
	PhaseBootstrapping  Phase = "bootstrapping"
	PhaseAnonymous      Phase = "anonymous"
	PhaseAuthenticated  Phase = "authenticated"
	PhaseAuthenticating Phase = "authenticating"
	PhaseRegistering    Phase = "registering"
	PhaseLoggingOut     Phase = "logging_out"
)

// IsSteady reports whether no operation is in flight in this phase
func (p Phase) IsSteady() bool {
	return p == PhaseAnonymous || p == PhaseAuthenticated
}

func steadyPhase(record model.SessionRecord) Phase {
	if record.IsAuthenticated() {
		return PhaseAuthenticated
	}
	return PhaseAnonymous
}
