package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"truthprevails/internal/domain/entity"
)

const keyPrefix = "registry:entry:"

// RedisEntryCache stores registry entries without expiry.
type RedisEntryCache struct {
	client *redis.Client
}

func NewRedisEntryCache(ctx context.Context, url string, timeout time.Duration) (*RedisEntryCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %v", err)
	}
	opts.ReadTimeout = timeout
	opts.WriteTimeout = timeout

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach redis: %v", err)
	}

	return &RedisEntryCache{client: client}, nil
}

func key(hash string) string {
	return keyPrefix + strings.ToLower(strings.TrimPrefix(hash, "0x"))
}

func (c *RedisEntryCache) Get(ctx context.Context, hash string) (*entity.RegistryEntry, error) {
	data, err := c.client.Get(ctx, key(hash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry entity.RegistryEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *RedisEntryCache) Set(ctx context.Context, entry *entity.RegistryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(entry.Hash), data, 0).Err()
}

func (c *RedisEntryCache) Close() error {
	return c.client.Close()
}
