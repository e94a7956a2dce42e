package assistant

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrSnakeDoc/showcase/internal/clock"
	"github.com/MrSnakeDoc/showcase/internal/domain"
	"github.com/MrSnakeDoc/showcase/internal/logger"
	"github.com/MrSnakeDoc/showcase/internal/seed"
)

// producer writes one reply into out. out is closed by the caller.
type producer func(ctx context.Context, text string, out chan<- Chunk)

type fakeConversation struct {
	reply   producer
	sendErr error
	closed  atomic.Bool
	sent    []string
	mu      sync.Mutex
}

func (c *fakeConversation) Send(ctx context.Context, text string) (<-chan Chunk, error) {
	if c.sendErr != nil {
		return nil, c.sendErr
	}
	c.mu.Lock()
	c.sent = append(c.sent, text)
	c.mu.Unlock()

	out := make(chan Chunk)
	go func() {
		defer close(out)
		c.reply(ctx, text, out)
	}()
	return out, nil
}

func (c *fakeConversation) Close() error {
	c.closed.Store(true)
	return nil
}

type fakeGateway struct {
	conv          *fakeConversation
	openErr       error
	generate      func(ctx context.Context, prompt string) (string, error)
	systemContext string
}

func (g *fakeGateway) Available() bool { return true }

func (g *fakeGateway) GenerateOnce(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, prompt)
}

func (g *fakeGateway) OpenConversation(_ context.Context, systemContext string) (Conversation, error) {
	if g.openErr != nil {
		return nil, g.openErr
	}
	g.systemContext = systemContext
	return g.conv, nil
}

// deltas streams parts one by one.
func deltas(parts ...string) producer {
	return func(ctx context.Context, _ string, out chan<- Chunk) {
		for _, p := range parts {
			select {
			case out <- Chunk{Text: p}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// blocking streams parts, then waits for release or ctx. aborted is closed
// if ctx ends first.
func blocking(release <-chan struct{}, aborted chan<- struct{}, parts ...string) producer {
	return func(ctx context.Context, text string, out chan<- Chunk) {
		deltas(parts...)(ctx, text, out)
		select {
		case <-release:
		case <-ctx.Done():
			if aborted != nil {
				close(aborted)
			}
		}
	}
}

func failing(err error, parts ...string) producer {
	return func(ctx context.Context, text string, out chan<- Chunk) {
		deltas(parts...)(ctx, text, out)
		select {
		case out <- Chunk{Err: &TransportError{Op: "stream", Err: err}}:
		case <-ctx.Done():
		}
	}
}

func testRecord() domain.Record {
	return seed.DefaultRecords()[2]
}

func testOptions(record domain.Optional[domain.Record]) (Options, *clock.Fake) {
	fake := clock.NewFake(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	return Options{
		Persona:       seed.DefaultPersona(),
		Record:        record,
		Clock:         fake,
		DegradedDelay: DefaultDegradedDelay,
		Logger:        logger.NewNop(),
	}, fake
}
