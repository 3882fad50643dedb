package memory

import (
	"context"
	"sync"

	"xeghep/internal/repository"
)

// SlotStore is an in-process implementation of repository.SlotStore.
type SlotStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewSlotStore creates an empty in-memory slot store.
func NewSlotStore() *SlotStore {
	return &SlotStore{slots: make(map[string][]byte)}
}

var _ repository.SlotStore = (*SlotStore)(nil)

// Load returns a copy of the value stored under key.
func (s *SlotStore) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.slots[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Save stores a copy of data under key.
func (s *SlotStore) Save(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = append([]byte(nil), data...)
	return nil
}

// SaveAll stores every entry of slots under a single lock.
func (s *SlotStore) SaveAll(ctx context.Context, slots map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, data := range slots {
		s.slots[key] = append([]byte(nil), data...)
	}
	return nil
}
