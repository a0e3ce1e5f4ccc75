package auth

import (
	"sync"
	"time"
)

// Manager keeps the live sessions, one gate over its own in-memory store per
// logged-in client. Clients hold only the opaque session id; everything else
// stays server-side. Two clients logging in independently get independent
// sessions, neither shared nor synchronized.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Gate
	now      func() time.Time
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Gate), now: time.Now}
}

// NewManagerAt builds a manager whose sessions use an injected clock.
func NewManagerAt(now func() time.Time) *Manager {
	return &Manager{sessions: make(map[string]*Gate), now: now}
}

// Login creates a fresh session and returns its id. The returned error
// carries the failure class (write failed vs. verification failed).
func (m *Manager) Login() (string, error) {
	gate := NewGateAt(NewMemoryStore(), m.now)
	if err := gate.Login(); err != nil {
		return "", err
	}
	id := gate.SessionID()

	m.mu.Lock()
	m.sessions[id] = gate
	m.mu.Unlock()
	return id, nil
}

// Gate returns the gate for the session id. Expired sessions are dropped
// from the registry as they are discovered.
func (m *Manager) Gate(id string) (*Gate, bool) {
	if id == "" {
		return nil, false
	}

	m.mu.Lock()
	gate, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return nil, false
	}

	if !gate.IsAuthenticated() {
		m.Logout(id)
		return nil, false
	}
	return gate, true
}

// Logout ends the session and forgets it.
func (m *Manager) Logout(id string) {
	m.mu.Lock()
	gate, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		gate.Logout()
	}
}
