package index

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/showcase/internal/assistant"
	"github.com/MrSnakeDoc/showcase/internal/domain"
)

// RecordSource resolves catalog records by id. *catalog.Service satisfies it.
type RecordSource interface {
	Get(ctx context.Context, id string) (domain.Record, bool, error)
}

// Open fetches recordID from records, opens a session scoped to it with f
// and registers the session. An empty recordID opens a general session;
// an unknown one is domain.ErrNotFound.
func (idx *SessionIndex) Open(ctx context.Context, records RecordSource, f assistant.Factory, recordID string) (*assistant.Session, error) {
	record := domain.None[domain.Record]()
	if id := strings.TrimSpace(recordID); id != "" {
		r, ok, err := records.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch record %q: %w", id, err)
		}
		if !ok {
			return nil, fmt.Errorf("record %q: %w", id, domain.ErrNotFound)
		}
		record = domain.Some(r)
	}

	s, err := f.Open(ctx, record)
	if err != nil {
		return nil, err
	}
	idx.Add(s)
	return s, nil
}
