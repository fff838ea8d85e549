package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares the pricing cache across processes; Redis owns
// expiry via the key TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := s.client.Get(ctx, "quote:"+key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (s *RedisStore) Set(ctx context.Context, key string, payload []byte) {
	s.client.Set(ctx, "quote:"+key, payload, s.ttl)
}
