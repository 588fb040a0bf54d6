package model

import "time"

// Account is a registered user as stored by the identity service.
// Stored separately from sessions so the password hash never travels with one.
type Account struct {
	UserID       UserID    `json:"userId"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`        // normalized lowercase, unique
	PasswordHash string    `json:"passwordHash"` // bcrypt hash
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// User returns the public view of the account
func (a *Account) User() User {
	return User{
		UserID:   a.UserID,
		FullName: a.FullName,
		Email:    a.Email,
	}
}

// Session is a server-side session issued by the identity service
type Session struct {
	Token     string    `json:"token"`
	UserID    UserID    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is no longer valid at now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
