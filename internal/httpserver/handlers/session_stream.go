package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MrSnakeDoc/showcase/internal/assistant"
	"github.com/MrSnakeDoc/showcase/internal/domain"
	"github.com/MrSnakeDoc/showcase/internal/httpserver/deps"
	"github.com/MrSnakeDoc/showcase/internal/logger"
)

const (
	streamPingInterval = 10 * time.Second
	streamWriteWait    = 5 * time.Second
	streamMaxMessage   = 8 << 10
)

// streamFrame is one outbound websocket message.
type streamFrame struct {
	Type     string              `json:"type"` // snapshot | message | state | error
	Snapshot *assistant.Snapshot `json:"snapshot,omitempty"`
	Message  *domain.ChatMessage `json:"message,omitempty"`
	State    *assistant.State    `json:"state,omitempty"`
	Error    string              `json:"error,omitempty"`
}

func eventFrame(e assistant.Event) streamFrame {
	f := streamFrame{Type: string(e.Kind), Message: e.Message}
	if e.Kind == assistant.EventState {
		state := e.State
		f.State = &state
	}
	return f
}

// inboundFrame is what clients send: {"type":"send","text":"..."}.
type inboundFrame struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// SessionStream upgrades to a websocket bound to session {id}. It first
// sends a snapshot, then every session event. Inbound "send" frames run an
// exchange; their errors come back as "error" frames.
func SessionStream(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := lookupSession(w, r, d)
		if !ok {
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			d.Logger.Debug("websocket upgrade failed", logger.Error(err))
			return
		}
		defer func() { _ = conn.Close() }()

		// the request context ends with the handler; the connection outlives it
		ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
		defer cancel()

		frames := make(chan streamFrame, 16)
		unsubscribe := s.Observe(func(e assistant.Event) {
			select {
			case frames <- eventFrame(e):
			case <-ctx.Done():
			}
		})
		defer unsubscribe()

		snap := s.Snapshot()
		frames <- streamFrame{Type: "snapshot", Snapshot: &snap}

		go readStream(ctx, cancel, conn, s, frames, d)

		d.Logger.Debug("session stream attached", logger.String("session_id", s.ID()))
		writeStream(ctx, conn, frames, d)
	}
}

// writeStream is the only writer on conn.
func writeStream(ctx context.Context, conn *websocket.Conn, frames <-chan streamFrame, d deps.Deps) {
	ping := time.NewTicker(streamPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(streamWriteWait))
			return
		case f := <-frames:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(f); err != nil {
				d.Logger.Debug("session stream write failed", logger.Error(err))
				return
			}
			if f.State != nil && *f.State == assistant.StateClosed {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"),
					time.Now().Add(streamWriteWait))
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		}
	}
}

// readStream handles inbound frames until the client goes away.
func readStream(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, s *assistant.Session, frames chan<- streamFrame, d deps.Deps) {
	defer cancel()
	conn.SetReadLimit(streamMaxMessage)

	for {
		var in inboundFrame
		if err := conn.ReadJSON(&in); err != nil {
			return
		}
		if in.Type != "send" {
			continue
		}

		go func(text string) {
			if err := s.Send(ctx, text); err != nil {
				select {
				case frames <- streamFrame{Type: "error", Error: err.Error()}:
				case <-ctx.Done():
				}
				d.Logger.Debug("stream send rejected",
					logger.String("session_id", s.ID()),
					logger.Error(err))
			}
		}(in.Text)
	}
}
