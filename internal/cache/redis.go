package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/evmtools/t8nkit/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Redis is a shared ResultCache backed by a Redis instance, so concurrent
// fixture-generation workers can reuse each other's runs.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// NewRedis wraps an existing client. Keys are namespaced with prefix; a zero
// ttl means entries never expire.
func NewRedis(client *backend.Client, prefix string, ttl time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

func (r *Redis) key(key string) string {
	return r.prefix + "transition:" + key
}

// Get returns the cached transition or domain.ErrNotCached.
func (r *Redis) Get(ctx context.Context, key string) (*domain.Transition, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrNotCached
		}
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}
	var tr domain.Transition
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return &tr, nil
}

// Put stores a transition under key.
func (r *Redis) Put(ctx context.Context, key string, tr *domain.Transition) error {
	data, err := json.Marshal(tr)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := r.client.Set(ctx, r.key(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}
