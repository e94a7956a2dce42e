package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/showcase/internal/assistant"
	"github.com/MrSnakeDoc/showcase/internal/catalog"
	"github.com/MrSnakeDoc/showcase/internal/comments"
	"github.com/MrSnakeDoc/showcase/internal/domain"
	"github.com/MrSnakeDoc/showcase/internal/index"
	"github.com/MrSnakeDoc/showcase/internal/logger"
)

type Deps struct {
	Logger           logger.Logger
	StartTime        time.Time
	Version          string
	Commit           string
	BuildDate        string
	GoVersion        string
	TimeNow          func() time.Time // for testing, defaults to time.Now
	AllowedHosts     []string         // Host headers allowed on admin routes
	AllowedCIDRS     []string         // IPs allowed on admin routes and readyz/infra
	TrustProxy       bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RequestTimeout   time.Duration    // per-request timeout on REST routes
	ChatBurst        int              // rate limit bucket size for chat and description routes
	ChatRefillPerMin int              // rate limit refill per client per minute

	Persona  domain.Persona      // profile, skills and experience
	Catalog  *catalog.Service    // catalog operations with their fixed latency
	Comments *comments.Board     // per-record comment threads
	Sessions *index.SessionIndex // live assistant sessions
	Factory  assistant.Factory   // opens new sessions

	Backend       string                          // durable backend name (bolt, redis, memory)
	BackendPing   func(ctx context.Context) error // nil-safe reachability check of the backend
	ReloadTrigger chan struct{}                   // Channel to trigger manual catalog reload
}

// Now returns TimeNow() or time.Now().
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}

// Ping checks the durable backend; nil when there is nothing to check.
func (d Deps) Ping(ctx context.Context) error {
	if d.BackendPing == nil {
		return nil
	}
	return d.BackendPing(ctx)
}
