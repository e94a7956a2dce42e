package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// NormalizeRole maps provider role names onto Role ("model" -> assistant).
func NormalizeRole(role string) Role {
	switch strings.ToLower(role) {
	case "model", "ai", "assistant":
		return RoleAssistant
	default:
		return RoleUser
	}
}

// ChatMessage is one turn of a visitor conversation.
// Text only grows while its turn is streaming and is frozen afterwards.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChatMessage builds a message with a fresh id.
func NewChatMessage(role Role, text string, at time.Time) ChatMessage {
	return ChatMessage{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Role:      role,
		Text:      text,
		Timestamp: at,
	}
}
