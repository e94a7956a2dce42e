// Package catalog owns the record collection and its durable encoding.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MrSnakeDoc/showcase/internal/domain"
	"github.com/MrSnakeDoc/showcase/internal/logger"
	"github.com/MrSnakeDoc/showcase/internal/store"
)

// ErrDecode marks a durable blob that could not be turned into a catalog.
// Load never returns it; it only shows up in logs.
var ErrDecode = errors.New("malformed catalog resource")

// Store holds the authoritative, ordered record collection and rewrites the
// durable resource after every mutation.
//
// Thread-safety: all methods are safe for concurrent use. Mutations are
// serialized; each one completes its durable write before the next starts.
type Store struct {
	mu       sync.Mutex
	resource store.Resource
	seed     []domain.Record
	records  []domain.Record
	logger   logger.Logger
	lastLoad time.Time
}

// NewStore creates an empty store. Call Load before serving reads.
// seed is the collection used when the resource is absent or malformed.
func NewStore(resource store.Resource, seed []domain.Record, log logger.Logger) *Store {
	return &Store{
		resource: resource,
		seed:     domain.CloneRecords(seed),
		records:  []domain.Record{},
		logger:   log,
	}
}

// Load reads the durable resource, preserving stored order.
//
// An absent or malformed resource resets the collection to the seed and
// persists it immediately. Only I/O failures are returned; in that case the
// in-memory collection still holds the seed so reads keep working.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastLoad = time.Now()

	data, err := s.resource.Read(ctx)
	switch {
	case errors.Is(err, store.ErrNotExist):
		s.logger.Info("catalog resource absent, seeding",
			logger.String("resource", s.resource.Name()),
			logger.Int("records", len(s.seed)))
		return s.resetLocked(ctx)
	case err != nil:
		s.records = domain.CloneRecords(s.seed)
		return fmt.Errorf("failed to read catalog resource: %w", err)
	}

	records, err := decode(data)
	if err != nil {
		s.logger.Warn("catalog resource malformed, falling back to seed",
			logger.String("resource", s.resource.Name()),
			logger.Error(err))
		return s.resetLocked(ctx)
	}

	s.records = records
	s.logger.Info("catalog loaded",
		logger.String("resource", s.resource.Name()),
		logger.Int("records", len(records)))
	return nil
}

// Reset discards the current collection and persists the seed.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetLocked(ctx)
}

func (s *Store) resetLocked(ctx context.Context) error {
	s.records = domain.CloneRecords(s.seed)
	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	return nil
}

// List returns a copy of every record in current order.
func (s *Store) List() []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneRecords(s.records)
}

// ListByCategory returns a copy of the records shown under c.
func (s *Store) ListByCategory(c domain.Category) []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Record, 0, len(s.records))
	for _, r := range s.records {
		if c.Matches(r.Category) {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Get returns the record with id. The boolean is false when absent.
func (s *Store) Get(id string) (domain.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(id); i >= 0 {
		return s.records[i].Clone(), true
	}
	return domain.Record{}, false
}

// Count returns the number of records.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// LastLoad returns when Load last ran (zero if never).
func (s *Store) LastLoad() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastLoad
}

// Upsert replaces the record with the same id in place, or inserts r as the
// first record. Invalid records fail with domain.ErrValidation and leave the
// store unchanged. The resource is rewritten before Upsert returns; if that
// write fails the change is rolled back.
func (s *Store) Upsert(ctx context.Context, r domain.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	r = r.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.records
	next := slices.Clone(s.records)
	if i := s.indexLocked(r.ID); i >= 0 {
		next[i] = r
	} else {
		next = slices.Insert(next, 0, r)
	}

	s.records = next
	if err := s.persistLocked(ctx); err != nil {
		s.records = previous
		return err
	}
	return nil
}

// Remove deletes the record with id. Removing an unknown id is not an error,
// but the resource is still rewritten.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.records
	s.records = slices.DeleteFunc(slices.Clone(s.records), func(r domain.Record) bool {
		return r.ID == id
	})
	if err := s.persistLocked(ctx); err != nil {
		s.records = previous
		return err
	}
	return nil
}

// Categories returns the fixed category labels, independent of stored data.
func (s *Store) Categories() []string {
	return domain.CategoryLabels()
}

// ResourceName returns the name of the durable resource.
func (s *Store) ResourceName() string {
	return s.resource.Name()
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.records, func(r domain.Record) bool {
		return r.ID == id
	})
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := s.resource.Write(ctx, data); err != nil {
		return fmt.Errorf("failed to write catalog resource: %w", err)
	}
	return nil
}

// decode parses a stored blob. Anything that is not a JSON array of valid
// records with unique ids is rejected.
func decode(data []byte) ([]domain.Record, error) {
	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: not an array", ErrDecode)
	}

	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrDecode, i, err)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrDecode, r.ID)
		}
		seen[r.ID] = true
	}
	return records, nil
}
