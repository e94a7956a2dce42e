// Package store defines the single named durable resource that holds the
// encoded catalog, and an in-memory implementation of it.
package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotExist is returned by Read when nothing was ever written.
var ErrNotExist = errors.New("resource does not exist")

// Resource is a named blob with synchronous read and full-overwrite write.
// No isolation between processes is provided.
type Resource interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Memory is a process-local Resource, used by tests and the "memory" backend.
type Memory struct {
	mu     sync.RWMutex
	name   string
	data   []byte
	exists bool
	writes int
}

// NewMemory returns an empty resource.
func NewMemory(name string) *Memory {
	return &Memory{name: name}
}

// NewMemoryWith returns a resource pre-filled with data.
func NewMemoryWith(name string, data []byte) *Memory {
	m := NewMemory(name)
	m.data = append([]byte(nil), data...)
	m.exists = true
	return m
}

func (m *Memory) Name() string { return m.name }

func (m *Memory) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.exists {
		return nil, ErrNotExist
	}
	return append([]byte(nil), m.data...), nil
}

func (m *Memory) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.exists = true
	m.writes++
	return nil
}

// Writes returns how many times Write succeeded.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
