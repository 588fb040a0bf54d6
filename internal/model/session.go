package model

import "log/slog"

// UserID uniquely identifies an account at the identity service
type UserID string

// User is the identity payload returned by the identity service
type User struct {
	UserID   UserID `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// SessionRecord is the process-wide view of who is signed in.
// The zero value is the anonymous record.
type SessionRecord struct {
	user *User
}

// Anonymous returns the record for a visitor without a session
func Anonymous() SessionRecord {
	return SessionRecord{}
}

// Authenticated returns a record for the given user.
// The user is copied so the record never shares state with the caller.
func Authenticated(user User) SessionRecord {
	u := user
	return SessionRecord{user: &u}
}

// IsAuthenticated reports whether the record carries a user
func (r SessionRecord) IsAuthenticated() bool {
	return r.user != nil
}

// User returns a copy of the signed-in user and true, or a zero User and false
func (r SessionRecord) User() (User, bool) {
	if r.user == nil {
		return User{}, false
	}
	return *r.user, true
}

// UserID returns the signed-in user's ID, or "" when anonymous
func (r SessionRecord) UserID() UserID {
	if r.user == nil {
		return ""
	}
	return r.user.UserID
}

// Equal reports whether two records describe the same session
func (r SessionRecord) Equal(other SessionRecord) bool {
	if r.user == nil || other.user == nil {
		return r.user == nil && other.user == nil
	}
	return *r.user == *other.user
}

func (r SessionRecord) String() string {
	if r.user == nil {
		return "anonymous"
	}
	return "authenticated(" + string(r.user.UserID) + ")"
}

// LogValue implements slog.LogValuer
func (r SessionRecord) LogValue() slog.Value {
	if r.user == nil {
		return slog.GroupValue(slog.String("state", "anonymous"))
	}
	return slog.GroupValue(
		slog.String("state", "authenticated"),
		slog.String("user_id", string(r.user.UserID)),
	)
}
