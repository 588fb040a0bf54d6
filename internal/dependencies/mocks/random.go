package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/sessionflow/internal/dependencies/random"
)

// MockRandom returns queued tokens, then predictable numbered ones
type MockRandom struct {
	mu     sync.Mutex
	tokens []string
	issued int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Token returns the next queued token, or prefix plus a sequence number
func (r *MockRandom) Token(prefix string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.issued++
	if len(r.tokens) > 0 {
		token := r.tokens[0]
		r.tokens = r.tokens[1:]
		return token
	}
	return fmt.Sprintf("%s%d", prefix, r.issued)
}

// QueueToken adds values to the token queue
func (r *MockRandom) QueueToken(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = append(r.tokens, values...)
}

// Issued returns how many tokens have been generated
func (r *MockRandom) Issued() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.issued
}
