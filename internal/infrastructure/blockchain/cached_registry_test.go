package blockchain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truthprevails/internal/domain/entity"
	"truthprevails/pkg/hashing"
)

type mapCache struct {
	entries map[string]*entity.RegistryEntry
	gets    int
	sets    int
	failGet bool
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string]*entity.RegistryEntry{}}
}

func (c *mapCache) Get(ctx context.Context, hash string) (*entity.RegistryEntry, error) {
	c.gets++
	if c.failGet {
		return nil, errors.New("cache down")
	}
	return c.entries[hash], nil
}

func (c *mapCache) Set(ctx context.Context, entry *entity.RegistryEntry) error {
	c.sets++
	c.entries[entry.Hash] = entry
	return nil
}

func TestCachedRegistry_OnlyPresentEntriesAreCached(t *testing.T) {
	inner := NewMemoryRegistry()
	cache := newMapCache()
	r := NewCachedRegistry(inner, cache)
	h := hashing.HashBytes([]byte("cached"))

	entry, err := r.VerifyHash(context.Background(), h)
	require.NoError(t, err)
	assert.False(t, entry.Exists)
	assert.Equal(t, 0, cache.sets)

	_, err = r.SubmitHash(context.Background(), h, keyA)
	require.NoError(t, err)

	entry, err = r.VerifyHash(context.Background(), h)
	require.NoError(t, err)
	assert.True(t, entry.Exists)
	assert.Equal(t, 1, cache.sets)

	again, err := r.VerifyHash(context.Background(), h)
	require.NoError(t, err)
	assert.Equal(t, entry, again)
	assert.Equal(t, 1, cache.sets)
}

func TestCachedRegistry_FallsThroughOnCacheFailure(t *testing.T) {
	inner := NewMemoryRegistry()
	cache := newMapCache()
	cache.failGet = true
	r := NewCachedRegistry(inner, cache)
	h := hashing.HashBytes([]byte("cached"))

	_, err := r.SubmitHash(context.Background(), h, keyA)
	require.NoError(t, err)

	entry, err := r.VerifyHash(context.Background(), h)
	require.NoError(t, err)
	assert.True(t, entry.Exists)
	assert.Equal(t, "memory", r.Mode())
}
