package interview

import (
	"fmt"
	"sync"

	"tax-engine/internal/model"
)

// ErrSessionNotFound names the missing session id.
type ErrSessionNotFound struct {
	SessionID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session %s not found", e.SessionID)
}

type held struct {
	mu      sync.Mutex
	session *model.Session
}

// Store is the session arena: sessions keyed by identifier, one writer per
// session. An answer submission runs to completion under the session's lock
// before the next is accepted.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*held
}

// NewStore builds an empty arena.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*held)}
}

// Put registers a session, replacing any previous holder of the same id
// (restore overwrites).
func (st *Store) Put(s *model.Session) {
	st.mu.Lock()
	st.sessions[s.SessionID] = &held{session: s}
	st.mu.Unlock()
}

// With runs fn with exclusive access to the session.
func (st *Store) With(id string, fn func(*model.Session) error) error {
	st.mu.RLock()
	h, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return &ErrSessionNotFound{SessionID: id}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.session)
}
