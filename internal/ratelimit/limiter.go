package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Store tallies one request for a key within the fixed window starting
// at windowStart and returns the running count including this request.
// Implementations must make the tally atomic: two concurrent requests
// from one client must never both observe a pre-increment count.
type Store interface {
	Hit(ctx context.Context, key string, windowStart time.Time, window time.Duration) (int64, error)
}

// Decision is the outcome reported back to the caller.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetTime time.Time
}

// Limiter enforces a per-identity quota over wall-clock-aligned fixed
// windows. Boundaries are floor(now/window)*window, so a client can
// burst up to 2x the ceiling across a boundary; that is the accepted
// behaviour of this scheme, not a defect.
type Limiter struct {
	store   Store
	scope   string
	ceiling int
	window  time.Duration
	now     func() time.Time
}

func New(store Store, scope string, ceiling int) *Limiter {
	return &Limiter{
		store:   store,
		scope:   scope,
		ceiling: ceiling,
		window:  time.Hour,
		now:     time.Now,
	}
}

func (l *Limiter) Ceiling() int { return l.ceiling }

func (l *Limiter) Allow(ctx context.Context, identity string) (Decision, error) {
	now := l.now()
	windowStart := now.Truncate(l.window)
	reset := windowStart.Add(l.window)

	count, err := l.store.Hit(ctx, l.scope+":"+identity, windowStart, l.window)
	if err != nil {
		return Decision{Allowed: true, Remaining: l.ceiling, ResetTime: reset}, err
	}

	remaining := l.ceiling - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= int64(l.ceiling),
		Remaining: remaining,
		ResetTime: reset,
	}, nil
}

// SetClock overrides the limiter clock; used by tests to cross window
// boundaries deterministically.
func (l *Limiter) SetClock(now func() time.Time) {
	l.now = now
}

type windowState struct {
	count       int64
	windowStart time.Time
}

// MemoryStore is the single-process store. A mutex covers the whole
// read-check-write sequence on each counter.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]*windowState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*windowState)}
}

func (s *MemoryStore) Hit(_ context.Context, key string, windowStart time.Time, _ time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[key]
	if !ok || !state.windowStart.Equal(windowStart) {
		state = &windowState{windowStart: windowStart}
		s.states[key] = state
	}
	state.count++
	return state.count, nil
}
