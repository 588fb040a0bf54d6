package response

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/sessionflow/internal/model"
)

// User is the user payload carried in the envelope
type User struct {
	UserID   string `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u model.User) *User {
	return &User{
		UserID:   string(u.UserID),
		FullName: u.FullName,
		Email:    u.Email,
	}
}

// Envelope is the body of every session endpoint response.
// statusCode mirrors the HTTP status.
type Envelope struct {
	StatusCode int     `json:"statusCode"`
	Data       *User   `json:"data"`
	Message    *string `json:"message"`
}

// Success writes an envelope carrying data
func Success(w http.ResponseWriter, status int, user *User) {
	JSON(w, status, Envelope{StatusCode: status, Data: user})
}

// Message writes an envelope with no data
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{StatusCode: status, Message: &message})
}

// JSON writes a JSON body. Session responses are never cacheable.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}
