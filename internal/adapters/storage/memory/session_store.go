package memory

import (
	"errors"
	"sync"

	"github.com/PabloGalante/frickbooks/internal/domain"
)

var (
	ErrSessionExists   = errors.New("session already exists")
	ErrSessionNotFound = errors.New("session not found")
)

// SessionStore keeps sessions for the lifetime of the process only.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.SessionID]domain.Session),
	}
}

func (s *SessionStore) CreateSession(session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return ErrSessionExists
	}

	s.sessions[session.ID] = *session
	return nil
}

func (s *SessionStore) UpdateSession(session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.sessions[session.ID]
	if !exists {
		return ErrSessionNotFound
	}

	// the startup name is fixed once the session is created
	updated := *session
	updated.StartupName = current.StartupName
	s.sessions[session.ID] = updated
	return nil
}

// GetSession returns a copy; callers persist changes through UpdateSession.
func (s *SessionStore) GetSession(id domain.SessionID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return &sess, nil
}
