package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/2beens/gymstats/internal/gymstats/workout"
)

// MemoryStore keeps sessions in process memory. Sessions are copied on the way
// in and out, so callers never share state with the store.
type MemoryStore struct {
	mutex    sync.RWMutex
	sessions map[string]*workout.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*workout.Session),
	}
}

func (s *MemoryStore) Create(_ context.Context, session *workout.Session) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.sessions[session.ID]; ok {
		return fmt.Errorf("session [%s] already exists", session.ID)
	}
	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*workout.Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, workout.ErrSessionNotFound
	}
	return session.Clone(), nil
}

// FindAllByUser returns the user's sessions ordered by date, then creation time.
func (s *MemoryStore) FindAllByUser(_ context.Context, userID string) ([]*workout.Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var sessions []*workout.Session
	for _, session := range s.sessions {
		if session.UserID == userID {
			sessions = append(sessions, session.Clone())
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Date.Equal(sessions[j].Date) {
			return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
		}
		return sessions[i].Date.Before(sessions[j].Date)
	})

	return sessions, nil
}

func (s *MemoryStore) Update(_ context.Context, session *workout.Session) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.sessions[session.ID]; !ok {
		return workout.ErrSessionNotFound
	}
	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *MemoryStore) DeleteByID(_ context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return workout.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.sessions)
}
