package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/showcase/internal/clock"
	"github.com/MrSnakeDoc/showcase/internal/domain"
	"github.com/MrSnakeDoc/showcase/internal/logger"
	"github.com/MrSnakeDoc/showcase/internal/prompt"
)

// DefaultDegradedDelay is how long a simulated reply takes.
const DefaultDegradedDelay = time.Second

// State is the lifecycle position of a Session.
//
//	Uninitialized -> Ready -> Sending -> Streaming -> Ready
//	any state -> Closed
type State uint8

const (
	StateUninitialized State = iota
	StateReady
	StateSending
	StateStreaming
	StateClosed
)

var stateNames = [...]string{
	StateUninitialized: "uninitialized",
	StateReady:         "ready",
	StateSending:       "sending",
	StateStreaming:     "streaming",
	StateClosed:        "closed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", text)
}

// EventKind tells observers what changed.
type EventKind string

const (
	// EventMessage carries a message that was appended or whose text grew.
	EventMessage EventKind = "message"
	// EventState carries a state transition.
	EventState EventKind = "state"
)

// Event is delivered to observers after every change.
type Event struct {
	Kind    EventKind           `json:"type"`
	Message *domain.ChatMessage `json:"message,omitempty"`
	State   State               `json:"state"`
}

// Observer receives events. It is called outside the session lock, from the
// goroutine that made the change, and must not block for long.
type Observer func(Event)

// Options configures a Session.
type Options struct {
	Persona       domain.Persona
	Record        domain.Optional[domain.Record]
	Clock         clock.Clock
	DegradedDelay time.Duration
	// ReplyTimeout bounds one exchange. Zero means no timeout. Expiry is
	// handled like a transport failure.
	ReplyTimeout time.Duration
	Logger       logger.Logger
}

// Snapshot is a point-in-time copy of a session.
type Snapshot struct {
	ID       string               `json:"id"`
	State    State                `json:"state"`
	Degraded bool                 `json:"degraded"`
	RecordID string               `json:"recordId,omitempty"`
	Messages []domain.ChatMessage `json:"messages"`
}

// Session is one visitor conversation. It owns its message history; the
// record it was opened with is a read-only snapshot.
//
// At most one exchange runs at a time: Send while Sending or Streaming
// returns ErrBusy. Close aborts an in-flight stream.
type Session struct {
	id      string
	gateway Gateway
	opts    Options

	closeCtx context.Context
	closeFn  context.CancelFunc

	mu         sync.Mutex
	state      State
	opening    bool // an Open call is building the conversation
	degraded   bool
	conv       Conversation
	messages   []domain.ChatMessage
	lastActive time.Time
	observers  map[int]Observer
	nextObs    int
}

// NewSession creates an unopened session.
func NewSession(gateway Gateway, opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.DegradedDelay < 0 {
		opts.DegradedDelay = 0
	}

	closeCtx, closeFn := context.WithCancel(context.Background())
	return &Session{
		id:         uuid.Must(uuid.NewV7()).String(),
		gateway:    gateway,
		opts:       opts,
		closeCtx:   closeCtx,
		closeFn:    closeFn,
		state:      StateUninitialized,
		lastActive: opts.Clock.Now(),
		observers:  make(map[int]Observer),
	}
}

// Open creates and opens a session in one step.
func Open(ctx context.Context, gateway Gateway, opts Options) (*Session, error) {
	s := NewSession(gateway, opts)
	if err := s.Open(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Open builds the system context, asks the gateway for a conversation and
// seeds the greeting. An unavailable gateway puts the session in degraded
// mode instead of failing.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateUninitialized {
		state := s.state
		s.mu.Unlock()
		if state == StateClosed {
			return ErrClosed
		}
		return fmt.Errorf("session already open (state %s)", state)
	}
	if s.opening {
		s.mu.Unlock()
		return fmt.Errorf("%w: session is opening", ErrBusy)
	}
	s.opening = true
	s.mu.Unlock()

	systemContext := prompt.SystemContext(s.opts.Persona, s.opts.Record)

	degraded := false
	conv, err := s.gateway.OpenConversation(ctx, systemContext)
	switch {
	case errors.Is(err, ErrUnavailable):
		degraded = true
		s.opts.Logger.Info("assistant unavailable, session degraded",
			logger.String("session_id", s.id))
	case err != nil:
		degraded = true
		s.opts.Logger.Warn("failed to open conversation, session degraded",
			logger.String("session_id", s.id),
			logger.Error(err))
	}

	greeting := domain.NewChatMessage(domain.RoleAssistant,
		Greeting(s.opts.Persona.Profile, s.opts.Record), s.opts.Clock.Now())

	s.mu.Lock()
	s.opening = false
	if s.state == StateClosed {
		s.mu.Unlock()
		if conv != nil {
			_ = conv.Close()
		}
		return ErrClosed
	}
	s.conv = conv
	s.degraded = degraded
	s.messages = append(s.messages, greeting)
	s.state = StateReady
	s.lastActive = s.opts.Clock.Now()
	s.mu.Unlock()

	s.notify(Event{Kind: EventMessage, Message: &greeting, State: StateReady})
	s.notify(Event{Kind: EventState, State: StateReady})
	return nil
}

// Send appends the visitor message and runs one exchange, blocking until
// the session is Ready again.
//
// Transport failures and reply timeouts do not fail Send: they end the turn
// with ErrorNotice. Send returns ErrClosed if the session is closed during
// the exchange, and the context error if ctx ends first.
func (s *Session) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: message is empty", domain.ErrValidation)
	}

	s.mu.Lock()
	switch s.state {
	case StateClosed:
		s.mu.Unlock()
		return ErrClosed
	case StateUninitialized:
		s.mu.Unlock()
		return ErrNotOpen
	case StateSending, StateStreaming:
		s.mu.Unlock()
		return ErrBusy
	}

	user := domain.NewChatMessage(domain.RoleUser, text, s.opts.Clock.Now())
	s.messages = append(s.messages, user)
	s.state = StateSending
	s.lastActive = user.Timestamp
	degraded := s.degraded
	conv := s.conv
	s.mu.Unlock()

	s.notify(Event{Kind: EventMessage, Message: &user, State: StateSending})
	s.notify(Event{Kind: EventState, State: StateSending})

	exCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.closeCtx, cancel)
	defer stop()
	if s.opts.ReplyTimeout > 0 {
		var cancelTimeout context.CancelFunc
		exCtx, cancelTimeout = context.WithTimeout(exCtx, s.opts.ReplyTimeout)
		defer cancelTimeout()
	}

	if degraded {
		return s.finish(ctx, s.simulate(exCtx))
	}
	return s.finish(ctx, s.stream(exCtx, conv, text))
}

// simulate produces the degraded reply after the fixed delay.
func (s *Session) simulate(ctx context.Context) error {
	if err := s.opts.Clock.Sleep(ctx, s.opts.DegradedDelay); err != nil {
		return err
	}
	reply := domain.NewChatMessage(domain.RoleAssistant,
		DegradedReply(s.opts.Persona.Profile, s.opts.Record), s.opts.Clock.Now())
	return s.appendMessage(reply)
}

// stream consumes the reply deltas into one placeholder message.
func (s *Session) stream(ctx context.Context, conv Conversation, text string) error {
	chunks, err := conv.Send(ctx, text)
	if err != nil {
		return err
	}

	placeholder := domain.NewChatMessage(domain.RoleAssistant, "", s.opts.Clock.Now())
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.messages = append(s.messages, placeholder)
	idx := len(s.messages) - 1
	s.state = StateStreaming
	s.mu.Unlock()

	s.notify(Event{Kind: EventState, State: StateStreaming})
	s.notify(Event{Kind: EventMessage, Message: &placeholder, State: StateStreaming})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chunk, ok := <-chunks:
			if !ok {
				return s.fillEmptyReply(idx)
			}
			if chunk.Err != nil {
				return chunk.Err
			}
			if chunk.Text == "" {
				continue
			}

			s.mu.Lock()
			if s.state == StateClosed {
				s.mu.Unlock()
				return ErrClosed
			}
			s.messages[idx].Text += chunk.Text
			updated := s.messages[idx]
			s.lastActive = s.opts.Clock.Now()
			s.mu.Unlock()

			s.notify(Event{Kind: EventMessage, Message: &updated, State: StateStreaming})
		}
	}
}

// fillEmptyReply gives a reply that completed without any text the fixed
// EmptyReply text, keeping the placeholder's identity.
func (s *Session) fillEmptyReply(idx int) error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.messages[idx].Text != "" {
		s.mu.Unlock()
		return nil
	}
	s.messages[idx].Text = EmptyReply
	updated := s.messages[idx]
	s.mu.Unlock()

	s.opts.Logger.Warn("assistant reply was empty",
		logger.String("session_id", s.id))
	s.notify(Event{Kind: EventMessage, Message: &updated, State: StateStreaming})
	return nil
}

// finish ends an exchange. Every accepted Send leaves the session Ready with
// a terminal assistant message, unless the session was closed meanwhile.
func (s *Session) finish(callerCtx context.Context, err error) error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return ErrClosed
	}

	var notice *domain.ChatMessage
	if err != nil {
		s.opts.Logger.Warn("assistant exchange failed",
			logger.String("session_id", s.id),
			logger.Bool("degraded", s.degraded),
			logger.Error(err))
		m := domain.NewChatMessage(domain.RoleAssistant, ErrorNotice, s.opts.Clock.Now())
		s.messages = append(s.messages, m)
		notice = &m
	}
	s.state = StateReady
	s.lastActive = s.opts.Clock.Now()
	s.mu.Unlock()

	if notice != nil {
		s.notify(Event{Kind: EventMessage, Message: notice, State: StateReady})
	}
	s.notify(Event{Kind: EventState, State: StateReady})

	if err != nil && callerCtx.Err() != nil {
		return callerCtx.Err()
	}
	return nil
}

func (s *Session) appendMessage(m domain.ChatMessage) error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.messages = append(s.messages, m)
	state := s.state
	s.mu.Unlock()

	s.notify(Event{Kind: EventMessage, Message: &m, State: state})
	return nil
}

// Close releases the conversation and aborts any in-flight exchange.
// Closing twice is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return nil
	}
	s.state = StateClosed
	conv := s.conv
	s.conv = nil
	s.mu.Unlock()

	s.closeFn()
	s.notify(Event{Kind: EventState, State: StateClosed})

	if conv != nil {
		if err := conv.Close(); err != nil {
			return fmt.Errorf("failed to close conversation: %w", err)
		}
	}
	return nil
}

// Observe registers fn and returns a function that unregisters it.
func (s *Session) Observe(fn Observer) func() {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Session) notify(e Event) {
	s.mu.Lock()
	observers := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(e)
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// RecordID returns the id of the record in scope, if any. The record is
// fixed at creation so no lock is needed.
func (s *Session) RecordID() string {
	if r, ok := s.opts.Record.Get(); ok {
		return r.ID
	}
	return ""
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Degraded reports whether the session simulates replies.
func (s *Session) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// Messages returns a copy of the history in send order.
func (s *Session) Messages() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// LastActive returns the time of the last open, send or delta.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Snapshot returns a copy of the session for presentation.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages := make([]domain.ChatMessage, len(s.messages))
	copy(messages, s.messages)
	return Snapshot{
		ID:       s.id,
		State:    s.state,
		Degraded: s.degraded,
		RecordID: s.RecordID(),
		Messages: messages,
	}
}
