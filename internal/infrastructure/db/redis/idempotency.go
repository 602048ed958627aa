package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers which record a create request produced so a
// retried request with the same key gets the original record back.
// Key format: idem:<scope>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. A non-positive ttl uses 24h.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup returns the record id stored for key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, scope, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

// Remember binds key to recordID unless another request already did. It
// returns the id that ended up bound.
func (s *IdempotencyStore) Remember(ctx context.Context, scope, key, recordID string) (string, error) {
	k := s.key(scope, key)
	ok, err := s.client.SetNX(ctx, k, recordID, s.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("idempotency remember: %w", err)
	}
	if ok {
		return recordID, nil
	}
	existing, err := s.client.Get(ctx, k).Result()
	if err != nil {
		return "", fmt.Errorf("idempotency remember: %w", err)
	}
	return existing, nil
}

// Ping reports whether Redis answers.
func (s *IdempotencyStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *IdempotencyStore) key(scope, key string) string {
	return fmt.Sprintf("idem:%s:%s", scope, key)
}
