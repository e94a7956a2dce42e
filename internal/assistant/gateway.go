// Package assistant wraps the external generative-AI service: one-shot
// generation, streamed multi-turn conversations, and the per-visitor
// Session state machine built on top of them.
package assistant

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is returned by gateways that have no usable credential.
	ErrUnavailable = errors.New("assistant unavailable: no credential configured")

	// ErrBusy rejects a Send while another exchange is in flight.
	ErrBusy = errors.New("assistant session busy")

	// ErrClosed is returned by a Session after Close.
	ErrClosed = errors.New("assistant session closed")

	// ErrNotOpen is returned by Send before Open.
	ErrNotOpen = errors.New("assistant session not open")
)

// TransportError wraps a network or model failure.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("assistant %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Chunk is one element of a reply stream. A Chunk with Err set is always
// the last one sent.
type Chunk struct {
	Text string
	Err  error
}

// Gateway is the capability boundary over the external service.
type Gateway interface {
	// Available reports whether a credential is configured. It must be
	// checked before opening a conversation.
	Available() bool

	// GenerateOnce sends a single prompt and returns the full reply.
	// Failures are returned as *TransportError.
	GenerateOnce(ctx context.Context, prompt string) (string, error)

	// OpenConversation creates a multi-turn handle bound to systemContext.
	// It returns ErrUnavailable when no credential is configured.
	OpenConversation(ctx context.Context, systemContext string) (Conversation, error)
}

// Conversation is a multi-turn handle.
type Conversation interface {
	// Send submits text and streams the reply. The producer closes the
	// channel when the reply ends or ctx is done; the sequence is finite and
	// cannot be restarted.
	Send(ctx context.Context, text string) (<-chan Chunk, error)

	Close() error
}

// Unavailable is the Gateway used when no credential is configured.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) GenerateOnce(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) OpenConversation(context.Context, string) (Conversation, error) {
	return nil, ErrUnavailable
}
