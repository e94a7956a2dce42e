package catalog

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/showcase/internal/clock"
	"github.com/MrSnakeDoc/showcase/internal/domain"
)

// Latency is the artificial delay applied before each operation kind.
type Latency struct {
	List   time.Duration
	Get    time.Duration
	Save   time.Duration
	Delete time.Duration
}

// DefaultLatency returns the delays of a slow remote backend.
func DefaultLatency() Latency {
	return Latency{
		List:   300 * time.Millisecond,
		Get:    200 * time.Millisecond,
		Save:   400 * time.Millisecond,
		Delete: 300 * time.Millisecond,
	}
}

// Service is the asynchronous facade over Store. It only waits and delegates;
// every rule lives in Store.
//
// Each call blocks for its latency first and returns ctx.Err() if the
// context ends during the wait, without touching the store.
type Service struct {
	store   *Store
	clock   clock.Clock
	latency Latency
}

// NewService wraps store with the given clock and delays.
func NewService(store *Store, clk clock.Clock, latency Latency) *Service {
	return &Service{
		store:   store,
		clock:   clk,
		latency: latency,
	}
}

// Store returns the underlying store.
func (s *Service) Store() *Store { return s.store }

// List returns every record in current order.
func (s *Service) List(ctx context.Context) ([]domain.Record, error) {
	if err := s.clock.Sleep(ctx, s.latency.List); err != nil {
		return nil, err
	}
	return s.store.List(), nil
}

// ListByCategory returns the records shown under c.
func (s *Service) ListByCategory(ctx context.Context, c domain.Category) ([]domain.Record, error) {
	if err := s.clock.Sleep(ctx, s.latency.List); err != nil {
		return nil, err
	}
	return s.store.ListByCategory(c), nil
}

// Search ranks the records in category c against query.
func (s *Service) Search(ctx context.Context, query string, c domain.Category) ([]domain.RecordCandidate, error) {
	records, err := s.ListByCategory(ctx, c)
	if err != nil {
		return nil, err
	}
	return domain.RankRecords(query, records), nil
}

// Get returns the record with id; found is false when absent.
func (s *Service) Get(ctx context.Context, id string) (domain.Record, bool, error) {
	if err := s.clock.Sleep(ctx, s.latency.Get); err != nil {
		return domain.Record{}, false, err
	}
	r, ok := s.store.Get(id)
	return r, ok, nil
}

// Save inserts or replaces r.
func (s *Service) Save(ctx context.Context, r domain.Record) error {
	if err := s.clock.Sleep(ctx, s.latency.Save); err != nil {
		return err
	}
	return s.store.Upsert(ctx, r)
}

// Delete removes the record with id; unknown ids are ignored.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.clock.Sleep(ctx, s.latency.Delete); err != nil {
		return err
	}
	return s.store.Remove(ctx, id)
}

// Categories returns the fixed category labels. It does not wait.
func (s *Service) Categories() []string {
	return s.store.Categories()
}
