package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPreservesInputOrder(t *testing.T) {
	a := Key([]string{"p1", "p2"}, []int{10, 20}, "E1 1AA", "retail")
	b := Key([]string{"p2", "p1"}, []int{20, 10}, "E1 1AA", "retail")

	// Line order is significant by design: reordered lines are a
	// different cache entry.
	assert.NotEqual(t, a, b)
	assert.Equal(t, "p1,p2|10,20|E1 1AA|retail", a)
}

func TestKeyVariesWithEveryInput(t *testing.T) {
	base := Key([]string{"p1"}, []int{10}, "E1 1AA", "retail")

	assert.NotEqual(t, base, Key([]string{"p2"}, []int{10}, "E1 1AA", "retail"))
	assert.NotEqual(t, base, Key([]string{"p1"}, []int{11}, "E1 1AA", "retail"))
	assert.NotEqual(t, base, Key([]string{"p1"}, []int{10}, "B1 1AA", "retail"))
	assert.NotEqual(t, base, Key([]string{"p1"}, []int{10}, "E1 1AA", "trade"))
}

func TestMemoryStoreHitWithinTTL(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "k", []byte(`{"total":42}`))

	got, ok := store.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"total":42}`), got)
}

func TestMemoryStoreExpiredEntryIsMiss(t *testing.T) {
	store := NewMemoryStore(30 * time.Millisecond)
	ctx := context.Background()

	store.Set(ctx, "k", []byte("payload"))
	time.Sleep(60 * time.Millisecond)

	_, ok := store.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "k", []byte("old"))
	store.Set(ctx, "k", []byte("new"))

	got, ok := store.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got)
}
