package model

import "log/slog"

// Credentials is the input to a login submission
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LogValue keeps the password out of logs
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(slog.String("email", c.Email))
}

// RegistrationProfile is the input to a sign-up submission
type RegistrationProfile struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LogValue keeps the password out of logs
func (p RegistrationProfile) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("full_name", p.FullName),
		slog.String("email", p.Email),
	)
}

// Credentials returns the login credentials contained in the profile
func (p RegistrationProfile) Credentials() Credentials {
	return Credentials{Email: p.Email, Password: p.Password}
}
