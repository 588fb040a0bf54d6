// Package session holds the process-wide session record and the state machine
// that keeps it in sync with the identity service.
package session

import (
	"io"
	"log/slog"
	"sync"

	"github.com/mcoot/sessionflow/internal/model"
)

// Observer is called after every replacement with the previous and new record
type Observer func(prev, next model.SessionRecord)

// Store owns the single live SessionRecord.
//
// Replace is the only mutation point. Observers run synchronously, in
// subscription order, after the new value is committed. They must not call
// Replace themselves.
type Store struct {
	mu      sync.RWMutex
	current model.SessionRecord

	// replaceMu serializes commit+notify so observers see commits in order
	replaceMu sync.Mutex
	observers observerList[model.SessionRecord]

	logger *slog.Logger
}

// NewStore creates a store holding the anonymous record
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Store{
		current: model.Anonymous(),
		logger:  logger.With(slog.String("component", "session_store")),
	}
}

// Current returns the live record
func (s *Store) Current() model.SessionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace swaps in a new record and notifies observers
func (s *Store) Replace(record model.SessionRecord) {
	s.replaceMu.Lock()
	defer s.replaceMu.Unlock()

	s.mu.Lock()
	prev := s.current
	s.current = record
	s.mu.Unlock()

	s.logger.Debug("session replaced",
		slog.Any("from", prev),
		slog.Any("to", record))

	s.observers.notify(s.logger, prev, record)
}

// Subscribe registers an observer and returns a function that removes it.
// Removal only affects notifications that have not started yet.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	return s.observers.add(fn)
}

// SubscriberCount returns the number of registered observers
func (s *Store) SubscriberCount() int {
	return s.observers.len()
}
