package random

import (
	"crypto/rand"
	"encoding/base64"
)

// tokenBytes is the entropy of a generated token
const tokenBytes = 32

// Random generates opaque identifiers and can be mocked for testing
type Random interface {
	// Token returns a new unguessable token starting with prefix
	Token(prefix string) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Token returns prefix followed by 32 random bytes, base64url encoded
func (r *CryptoRandom) Token(prefix string) string {
	b := make([]byte, tokenBytes)
	// crypto/rand.Read never returns an error on supported platforms
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}
