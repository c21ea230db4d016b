// =============================================================================
// Price Update Preparation Tool - Session Registry
// =============================================================================
//
// Each browser tab that opens the editor gets its own session: a row table,
// the sheet link it last refreshed against, and a last-activity timestamp.
// Sessions are ephemeral and live only in memory. Idle sessions are evicted
// by a periodic sweep.
//
// =============================================================================

package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/priceops/priceprep/internal/rowtable"
)

// DefaultRowCount is the number of blank rows a fresh session starts with.
const DefaultRowCount = 20

// Session is one user's editing state.
type Session struct {
	ID        string
	Table     *rowtable.Table
	SheetLink string

	lastSeen time.Time
}

// SessionStore is a concurrency-safe registry of live sessions.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration

	// now is swappable for expiry tests.
	now func() time.Time
}

// NewSessionStore creates a store that evicts sessions idle longer than ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a new session with rowCount blank rows and returns it.
func (s *SessionStore) Create(rowCount int) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &Session{
		ID:       uuid.New().String(),
		Table:    rowtable.New(rowCount),
		lastSeen: s.now(),
	}
	s.sessions[session.ID] = session
	return session
}

// Get returns the session with the given id and marks it active. The second
// return value is false when the session does not exist or has expired.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.expired(session) {
		delete(s.sessions, id)
		return nil, false
	}
	session.lastSeen = s.now()
	return session, true
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops every expired session and returns how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if s.expired(session) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *SessionStore) expired(session *Session) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.now().Sub(session.lastSeen) > s.ttl
}
