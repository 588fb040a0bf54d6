package model

// SubmissionStatus is the lifecycle of a single form submission
type SubmissionStatus string

const (
	SubmissionIdle       SubmissionStatus = "idle"
	SubmissionSubmitting SubmissionStatus = "submitting"
	SubmissionFailed     SubmissionStatus = "failed"
)

// FailureKind classifies why a submission failed
type FailureKind string

const (
	FailureNone       FailureKind = ""
	FailureValidation FailureKind = "validation"
	FailureCredential FailureKind = "credential"
	FailureConflict   FailureKind = "conflict"
	FailureTransport  FailureKind = "transport"
)

// TransportReason is the reason shown for infrastructure faults
const TransportReason = "transport"

// SubmissionState is the transient state of the in-flight (or last) submission
type SubmissionState struct {
	Status SubmissionStatus `json:"status"`
	Kind   FailureKind      `json:"kind,omitempty"`
	Reason string           `json:"reason,omitempty"`
}

// Idle returns the resting submission state
func Idle() SubmissionState {
	return SubmissionState{Status: SubmissionIdle}
}

// Submitting returns the state of a submission awaiting the service
func Submitting() SubmissionState {
	return SubmissionState{Status: SubmissionSubmitting}
}

// Failed returns a failed submission state
func Failed(kind FailureKind, reason string) SubmissionState {
	return SubmissionState{Status: SubmissionFailed, Kind: kind, Reason: reason}
}

func (s SubmissionState) IsSubmitting() bool { return s.Status == SubmissionSubmitting }
func (s SubmissionState) IsFailed() bool     { return s.Status == SubmissionFailed }
