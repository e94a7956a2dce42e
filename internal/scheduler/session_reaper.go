package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/showcase/internal/assistant"
	"github.com/MrSnakeDoc/showcase/internal/clock"
	"github.com/MrSnakeDoc/showcase/internal/index"
	"github.com/MrSnakeDoc/showcase/internal/logger"
)

const (
	// DefaultIdleTTL is how long a session may stay untouched before it is closed
	DefaultIdleTTL = 30 * time.Minute
	// DefaultSweepInterval is used when no positive interval is configured
	DefaultSweepInterval = 5 * time.Minute
)

// SessionReaper closes assistant sessions that have been idle too long
type SessionReaper struct {
	index    *index.SessionIndex
	clock    clock.Clock
	logger   logger.Logger
	interval time.Duration
	idleTTL  time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewSessionReaper creates a new session reaper
func NewSessionReaper(
	idx *index.SessionIndex,
	clk clock.Clock,
	log logger.Logger,
	interval time.Duration,
	idleTTL time.Duration,
) *SessionReaper {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if clk == nil {
		clk = clock.System{}
	}

	return &SessionReaper{
		index:    idx,
		clock:    clk,
		logger:   log,
		interval: interval,
		idleTTL:  idleTTL,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep
func (sr *SessionReaper) Start(ctx context.Context) {
	ticker := time.NewTicker(sr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sr.Reap()
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the reaper. It is safe to call more than once.
func (sr *SessionReaper) Stop() {
	sr.stopOnce.Do(func() { close(sr.stopCh) })
}

// Reap closes and removes every idle session and returns how many it closed.
// Sessions with an exchange in flight are never reaped.
func (sr *SessionReaper) Reap() int {
	now := sr.clock.Now()
	reaped := 0

	for _, s := range sr.index.All() {
		switch s.State() {
		case assistant.StateSending, assistant.StateStreaming:
			continue
		}

		idle := now.Sub(s.LastActive())
		if s.State() != assistant.StateClosed && idle < sr.idleTTL {
			continue
		}

		sr.index.Remove(s.ID())
		if err := s.Close(); err != nil {
			sr.logger.Warn("failed to close idle session",
				logger.String("session_id", s.ID()),
				logger.Error(err))
		}

		sr.logger.Debug("reaped idle session",
			logger.String("session_id", s.ID()),
			logger.Duration("idle_for", idle))

		reaped++
	}

	sr.index.MarkSweep(now)

	if reaped > 0 {
		sr.logger.Info("session sweep completed",
			logger.Int("sessions_reaped", reaped),
			logger.Int("sessions_open", sr.index.Count()))
	}

	return reaped
}
