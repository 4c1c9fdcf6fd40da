package blockchain

import (
	"context"

	"truthprevails/internal/domain/entity"
	"truthprevails/internal/domain/service"
	"truthprevails/pkg/logger"
)

type EntryCache interface {
	// Get returns nil, nil on a miss.
	Get(ctx context.Context, hash string) (*entity.RegistryEntry, error)
	Set(ctx context.Context, entry *entity.RegistryEntry) error
}

// CachedRegistry remembers present entries only. A present entry never changes, while an
// absent one can become present at any time.
type CachedRegistry struct {
	service.HashRegistry
	cache EntryCache
}

func NewCachedRegistry(inner service.HashRegistry, cache EntryCache) *CachedRegistry {
	return &CachedRegistry{
		HashRegistry: inner,
		cache:        cache,
	}
}

func (r *CachedRegistry) VerifyHash(ctx context.Context, hash string) (*entity.RegistryEntry, error) {
	cached, err := r.cache.Get(ctx, hash)
	if err != nil {
		logger.Warn("Registry cache read failed for %s: %v", hash, err)
	} else if cached != nil {
		return cached, nil
	}

	entry, err := r.HashRegistry.VerifyHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	if entry.Exists {
		if err := r.cache.Set(ctx, entry); err != nil {
			logger.Warn("Registry cache write failed for %s: %v", entry.Hash, err)
		}
	}
	return entry, nil
}
