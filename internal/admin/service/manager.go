package service

import "sync"

// SessionManager owns one Session per admin, keyed by Firebase UID.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	deps     Deps
}

func NewSessionManager(deps Deps) *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session), deps: deps}
}

// Get returns the session for uid, creating an empty one on first use.
func (m *SessionManager) Get(uid string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[uid]
	if !ok {
		s = NewSession(uid, m.deps)
		m.sessions[uid] = s
	}
	return s
}

// Drop forgets the session for uid. The next Get starts empty.
func (m *SessionManager) Drop(uid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, uid)
}
