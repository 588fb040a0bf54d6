package cli

import (
	"github.com/mcoot/sessionflow/internal/model"
	"github.com/mcoot/sessionflow/internal/session"
)

// FormView renders the submission state of one form: a progress line while
// the request is pending and the failure reason inline when it fails.
// It only observes; it never changes session state.
type FormView struct {
	out     *Output
	pending string

	last model.SubmissionState
}

// NewFormView creates a form view that shows pending while submitting
func NewFormView(out *Output, pending string) *FormView {
	return &FormView{out: out, pending: pending, last: model.Idle()}
}

// Attach subscribes the view to the controller's submission state
func (v *FormView) Attach(controller *session.Controller) (detach func()) {
	return controller.SubscribeSubmission(func(_, next model.SubmissionState) {
		v.render(next)
	})
}

// State returns the last state the view rendered
func (v *FormView) State() model.SubmissionState {
	return v.last
}

// Disabled reports whether the form's submit control is disabled
func (v *FormView) Disabled() bool {
	return v.last.IsSubmitting()
}

func (v *FormView) render(state model.SubmissionState) {
	v.last = state
	switch state.Status {
	case model.SubmissionSubmitting:
		v.out.Progress(v.pending)
	case model.SubmissionFailed:
		v.out.Progress("Error: " + state.Reason)
	}
}
