package model

// RemoteOutcome is the normalized result of every identity service call
type RemoteOutcome struct {
	StatusCode int
	Payload    *User
	Message    string
}

// HasPayload reports whether the outcome carries a user
func (o *RemoteOutcome) HasPayload() bool {
	return o != nil && o.Payload != nil
}

// Record converts the payload into a session record.
// Outcomes without a payload yield the anonymous record.
func (o *RemoteOutcome) Record() SessionRecord {
	if !o.HasPayload() {
		return Anonymous()
	}
	return Authenticated(*o.Payload)
}
