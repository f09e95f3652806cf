package memory

import (
	"context"
	"sync"
	"time"

	"trivia-quiz-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// A zero ttl keeps sessions until they are overwritten or deleted. Expired sessions are
// swept on Save, at most once per ttl.
type SessionStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu        sync.RWMutex
	sessions  map[string]storedSession
	nextSweep time.Time
}

type storedSession struct {
	session   domain.QuizSession
	expiresAt time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		clock:    time.Now,
		sessions: make(map[string]storedSession),
	}
}

func (s *SessionStore) Save(_ context.Context, session domain.QuizSession) error {
	now := s.clock()
	entry := storedSession{session: session}
	if s.ttl > 0 {
		entry.expiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ttl > 0 && !now.Before(s.nextSweep) {
		s.sweepLocked(now)
		s.nextSweep = now.Add(s.ttl)
	}
	s.sessions[session.ID] = entry
	return nil
}

func (s *SessionStore) sweepLocked(now time.Time) {
	for id, entry := range s.sessions {
		if !entry.expiresAt.IsZero() && !entry.expiresAt.After(now) {
			delete(s.sessions, id)
		}
	}
}

func (s *SessionStore) Load(_ context.Context, id string) (domain.QuizSession, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return domain.QuizSession{}, domain.ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && !entry.expiresAt.After(s.clock()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return domain.QuizSession{}, domain.ErrSessionNotFound
	}
	return entry.session, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
