package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes a lock only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockStore guards ride request assignment across instances with
// SET NX locks. Each acquired lock carries a random token, and only the
// holder of that token can release it, so a lock that expired and was
// taken by another instance is left alone.
type LockStore struct {
	client *redis.Client
	tokens sync.Map // request ID -> token
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

func requestLockKey(requestID string) string {
	return fmt.Sprintf("lock:request:%s", requestID)
}

// AcquireRequestLock tries to take the assignment lock for a ride request.
// It reports false when another caller holds it.
func (s *LockStore) AcquireRequestLock(ctx context.Context, requestID string, ttl time.Duration) (bool, error) {
	token := uuid.New().String()

	ok, err := s.client.SetNX(ctx, requestLockKey(requestID), token, ttl).Result()
	if err != nil || !ok {
		return false, err
	}

	s.tokens.Store(requestID, token)
	return true, nil
}

// ReleaseRequestLock releases a lock taken by AcquireRequestLock. Releasing
// a lock this store does not hold is a no-op.
func (s *LockStore) ReleaseRequestLock(ctx context.Context, requestID string) error {
	token, ok := s.tokens.LoadAndDelete(requestID)
	if !ok {
		return nil
	}
	return releaseScript.Run(ctx, s.client, []string{requestLockKey(requestID)}, token).Err()
}
