// Package bolt stores the catalog resource in a single bbolt file.
package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/MrSnakeDoc/showcase/internal/store"
)

// DefaultBucket holds every showcase resource key.
const DefaultBucket = "showcase"

// Resource is a store.Resource backed by one key in a bbolt bucket.
type Resource struct {
	db     *bolt.DB
	bucket []byte
	key    []byte
}

// Open opens (creating if needed) the bbolt file at path and binds the
// resource to key.
func Open(path, key string) (*Resource, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create bolt directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt file %s: %w", path, err)
	}
	return &Resource{
		db:     db,
		bucket: []byte(DefaultBucket),
		key:    []byte(key),
	}, nil
}

func (r *Resource) Name() string { return string(r.key) }

// Read returns a copy of the stored value, or store.ErrNotExist.
func (r *Resource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(r.bucket)
		if b == nil {
			return store.ErrNotExist
		}
		v := b.Get(r.key)
		if v == nil {
			return store.ErrNotExist
		}
		// v is only valid inside the transaction
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Write replaces the stored value in a single transaction.
func (r *Resource) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(r.bucket)
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		if err := b.Put(r.key, data); err != nil {
			return fmt.Errorf("failed to write %s: %w", r.key, err)
		}
		return nil
	})
}

// Path returns the bbolt file path.
func (r *Resource) Path() string { return r.db.Path() }

// Close releases the file lock.
func (r *Resource) Close() error {
	return r.db.Close()
}
