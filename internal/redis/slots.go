package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"xeghep/internal/repository"
)

// SlotStore keeps each collection slot as a plain Redis string.
type SlotStore struct {
	client *redis.Client
}

// NewSlotStore creates a new SlotStore.
func NewSlotStore(client *redis.Client) *SlotStore {
	return &SlotStore{client: client}
}

// Load retrieves the value stored under key.
func (s *SlotStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Save stores data under key with no expiry.
func (s *SlotStore) Save(ctx context.Context, key string, data []byte) error {
	return s.client.Set(ctx, key, data, 0).Err()
}

// SaveAll writes every slot inside a MULTI/EXEC block.
func (s *SlotStore) SaveAll(ctx context.Context, slots map[string][]byte) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, data := range slots {
			pipe.Set(ctx, key, data, 0)
		}
		return nil
	})
	return err
}
