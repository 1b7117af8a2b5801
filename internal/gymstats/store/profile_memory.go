package store

import (
	"context"
	"sync"

	"github.com/2beens/gymstats/internal/gymstats/macros"
)

type MemoryProfileStore struct {
	mutex    sync.RWMutex
	profiles map[string]macros.Record
}

func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{
		profiles: make(map[string]macros.Record),
	}
}

func (s *MemoryProfileStore) Save(_ context.Context, record *macros.Record) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.profiles[record.Profile.UserID] = *record
	return nil
}

func (s *MemoryProfileStore) FindByUser(_ context.Context, userID string) (*macros.Record, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record, ok := s.profiles[userID]
	if !ok {
		return nil, macros.ErrProfileNotFound
	}
	return &record, nil
}
