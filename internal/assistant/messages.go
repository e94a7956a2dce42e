package assistant

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/showcase/internal/domain"
)

// ErrorNotice is the assistant message appended when an exchange fails.
const ErrorNotice = "I encountered an error connecting to the AI assistant."

// EmptyReply fills a live reply that completed without any text.
const EmptyReply = "I don't have an answer to that yet. Could you rephrase?"

const degradedPrefix = "Since there is no real API Key configured in this demo environment, I'm simulating a response. In a real app, I would answer specifically about "

// firstName returns the first word of name, or name itself.
func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}

// Greeting is the seed assistant message of a new session.
func Greeting(profile domain.Profile, current domain.Optional[domain.Record]) string {
	owner := firstName(profile.Name)
	if r, ok := current.Get(); ok {
		return fmt.Sprintf("Hi! I'm %s's AI assistant. Ask me anything about %q or my skills!", owner, r.Title)
	}
	return fmt.Sprintf("Hi! I'm %s's AI assistant. Ask me anything about my work or skills!", owner)
}

// DegradedReply is the simulated answer given when no credential is
// configured. It only depends on its inputs.
func DegradedReply(profile domain.Profile, current domain.Optional[domain.Record]) string {
	if r, ok := current.Get(); ok {
		return degradedPrefix + r.Title
	}
	return degradedPrefix + profile.Name + "'s work and experience"
}
