package identity

import "github.com/mcoot/sessionflow/internal/model"

// Envelope is the response body shape of every identity service endpoint
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       *model.User `json:"data"`
	Message    *string     `json:"message"`
}

// Outcome converts the envelope into a RemoteOutcome.
// httpStatus is used when the envelope omits statusCode.
func (e Envelope) Outcome(httpStatus int) *model.RemoteOutcome {
	status := e.StatusCode
	if status == 0 {
		status = httpStatus
	}

	outcome := &model.RemoteOutcome{StatusCode: status}
	if e.Data != nil && e.Data.UserID != "" {
		user := *e.Data
		outcome.Payload = &user
	}
	if e.Message != nil {
		outcome.Message = *e.Message
	}
	return outcome
}
