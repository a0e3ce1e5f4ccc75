package auth

import "sync"

// The three persisted session fields. Together they are the entire stored
// state of an authenticated session.
const (
	FieldAuthenticated = "isAuthenticated"
	FieldAuthTime      = "authTime"
	FieldSessionID     = "sessionId"
)

// SessionStore is the capability the gate persists session fields through.
// Implementations map named string fields to values; a missing field reads as
// the empty string. The interface exists so a server-backed store can replace
// the in-memory one without touching gate logic.
type SessionStore interface {
	Get(field string) string
	Set(field, value string) error
	Clear()
}

// MemoryStore holds session fields in process memory, one instance per
// client session. Sessions are not shared between instances, matching the
// tab-scoped storage of the original.
type MemoryStore struct {
	mu     sync.RWMutex
	fields map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{fields: make(map[string]string)}
}

func (m *MemoryStore) Get(field string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fields[field]
}

func (m *MemoryStore) Set(field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fields[field] = value
	return nil
}

func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fields = make(map[string]string)
}
