package session

import (
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is the in-memory, process-lifetime Store implementation.
// Appends to different sessions proceed concurrently; appends to the same
// session serialize on the store mutex, preserving arrival order.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]Message
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]Message),
	}
}

func (s *MemoryStore) Create() string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = []Message{}
	return id
}

func (s *MemoryStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

func (s *MemoryStore) History(id string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.sessions[id]
	if !ok {
		s.sessions[id] = []Message{}
		return nil
	}

	// Copy so callers can't mutate stored history.
	out := make([]Message, len(history))
	copy(out, history)
	return out
}

func (s *MemoryStore) Append(id string, role Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = append(s.sessions[id], Message{Role: role, Content: content})
}

func (s *MemoryStore) Clear(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}
