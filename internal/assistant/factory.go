package assistant

import (
	"context"

	"github.com/MrSnakeDoc/showcase/internal/domain"
)

// Factory opens sessions that share one gateway and one set of options.
type Factory struct {
	Gateway Gateway
	Base    Options
}

// Open creates and opens a session scoped to record, if any.
func (f Factory) Open(ctx context.Context, record domain.Optional[domain.Record]) (*Session, error) {
	opts := f.Base
	opts.Record = record
	return Open(ctx, f.Gateway, opts)
}

// Mode reports "live" when the gateway has a credential, "degraded" otherwise.
func (f Factory) Mode() string {
	if f.Gateway != nil && f.Gateway.Available() {
		return "live"
	}
	return "degraded"
}
