package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps counters in Redis so the quota holds across
// processes. The key embeds the window start, so a new window is a new
// key and INCR stays a single atomic check-and-increment.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Hit(ctx context.Context, key string, windowStart time.Time, window time.Duration) (int64, error) {
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, windowStart.Unix())

	pipe := s.client.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	// Keep the key a little past the window end so late readers still
	// see the exhausted counter.
	pipe.ExpireAt(ctx, redisKey, windowStart.Add(window+5*time.Minute))
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
