package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/showcase/internal/store"
)

// Resource is a store.Resource kept under a single Redis key.
// The value is written without TTL.
type Resource struct {
	client *redis.Client
	name   string
}

// NewResource binds a resource name to a Redis client
func NewResource(client *redis.Client, name string) *Resource {
	return &Resource{
		client: client,
		name:   name,
	}
}

func (r *Resource) Name() string { return r.name }

// Read returns the stored blob, or store.ErrNotExist on a missing key
func (r *Resource) Read(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, ResourceKey(r.name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read resource %s: %w", r.name, err)
	}
	return data, nil
}

// Write overwrites the stored blob
func (r *Resource) Write(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, ResourceKey(r.name), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write resource %s: %w", r.name, err)
	}
	return nil
}

// Delete removes the stored blob; the next Read reports ErrNotExist
func (r *Resource) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, ResourceKey(r.name)).Err(); err != nil {
		return fmt.Errorf("failed to delete resource %s: %w", r.name, err)
	}
	return nil
}

// Ping checks the Redis connection
func (r *Resource) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
