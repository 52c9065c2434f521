package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore maps appointment creation keys to the appointment they
// produced. Key format: idem:<business_id>:<key>
type IdempotencyStore struct {
	client *redis.Client
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

func (s *IdempotencyStore) Lookup(ctx context.Context, businessID, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, idempotencyKey(businessID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

// Remember records the key (expires after idempotencyTTL). An existing
// entry is kept.
func (s *IdempotencyStore) Remember(ctx context.Context, businessID, key, appointmentID string) error {
	return s.client.SetNX(ctx, idempotencyKey(businessID, key), appointmentID, idempotencyTTL).Err()
}

func idempotencyKey(businessID, key string) string {
	return fmt.Sprintf("idem:%s:%s", businessID, key)
}
