package index

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/MrSnakeDoc/showcase/internal/assistant"
)

// SessionIndex keeps the live assistant sessions addressable by id.
type SessionIndex struct {
	mu        sync.RWMutex
	sessions  map[string]*assistant.Session // ID -> Session
	lastSweep time.Time                     // Timestamp of last idle sweep
}

// NewSessionIndex creates a new session index
func NewSessionIndex() *SessionIndex {
	return &SessionIndex{
		sessions: make(map[string]*assistant.Session),
	}
}

// Add adds or replaces a session
func (idx *SessionIndex) Add(s *assistant.Session) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.sessions[s.ID()] = s
}

// Get retrieves a session by ID
func (idx *SessionIndex) Get(id string) (*assistant.Session, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	s, ok := idx.sessions[id]
	return s, ok
}

// Remove detaches a session from the index and returns it. The session is
// not closed.
func (idx *SessionIndex) Remove(id string) (*assistant.Session, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	s, ok := idx.sessions[id]
	if ok {
		delete(idx.sessions, id)
	}
	return s, ok
}

// All returns the sessions ordered by id, which is creation order.
func (idx *SessionIndex) All() []*assistant.Session {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	sessions := make([]*assistant.Session, 0, len(idx.sessions))
	for _, s := range idx.sessions {
		sessions = append(sessions, s)
	}
	slices.SortFunc(sessions, func(a, b *assistant.Session) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return sessions
}

// Count returns the number of sessions in the index
func (idx *SessionIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.sessions)
}

// MarkSweep records when the index was last swept for idle sessions.
func (idx *SessionIndex) MarkSweep(at time.Time) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.lastSweep = at
}

// LastSweep returns the timestamp of the last idle sweep
func (idx *SessionIndex) LastSweep() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastSweep
}

// CloseAll closes and removes every session.
func (idx *SessionIndex) CloseAll() int {
	idx.mu.Lock()
	sessions := idx.sessions
	idx.sessions = make(map[string]*assistant.Session)
	idx.mu.Unlock()

	for _, s := range sessions {
		_ = s.Close()
	}
	return len(sessions)
}
