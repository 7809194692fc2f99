package strategy

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrUnknownSession = errors.New("unknown session")

// SessionStore keeps independent sessions for a multi-session host.
// Each Session is owned by one caller at a time; the store only guards the map.
type SessionStore struct {
	mu       sync.RWMutex
	maxSteps int
	sessions map[string]*Session
}

// NewSessionStore creates an empty store whose sessions share the step limit
func NewSessionStore(maxSteps int) *SessionStore {
	return &SessionStore{
		maxSteps: maxSteps,
		sessions: make(map[string]*Session),
	}
}

// Get returns an existing session
func (sm *SessionStore) Get(name string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	s, ok := sm.sessions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, name)
	}
	return s, nil
}

// GetOrCreate returns the named session, creating an empty one if needed
func (sm *SessionStore) GetOrCreate(name string) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if s, ok := sm.sessions[name]; ok {
		return s
	}
	s := NewSession(name, sm.maxSteps)
	sm.sessions[name] = s
	return s
}

// Delete drops a session
func (sm *SessionStore) Delete(name string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, ok := sm.sessions[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSession, name)
	}
	delete(sm.sessions, name)
	return nil
}

// Names lists sessions alphabetically
func (sm *SessionStore) Names() []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	names := make([]string, 0, len(sm.sessions))
	for n := range sm.sessions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
