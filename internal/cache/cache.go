package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store memoizes full pricing payloads for a fixed TTL. Entries are
// immutable once written; recomputation after expiry overwrites them
// wholesale.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
}

// Key serializes every pricing-affecting input. Lists keep their given
// order: two requests differing only in line order are distinct entries
// on purpose, since line order may carry meaning to the caller.
func Key(productIDs []string, quantities []int, postcode, customerType string) string {
	qtys := make([]string, len(quantities))
	for i, q := range quantities {
		qtys[i] = strconv.Itoa(q)
	}
	return strings.Join([]string{
		strings.Join(productIDs, ","),
		strings.Join(qtys, ","),
		postcode,
		customerType,
	}, "|")
}

// MemoryStore is the single-process TTL cache.
type MemoryStore struct {
	inner *gocache.Cache
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		inner: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	val, ok := s.inner.Get(key)
	if !ok {
		return nil, false
	}
	payload, ok := val.([]byte)
	return payload, ok
}

func (s *MemoryStore) Set(_ context.Context, key string, payload []byte) {
	s.inner.Set(key, payload, s.ttl)
}
