// Package prompt builds the text handed to the assistant: the system context
// of a chat session and the one-shot description prompt.
//
// Every function here is pure. The same inputs always produce the same text.
package prompt

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/showcase/internal/domain"
)

const (
	// DescriptionTone is the tone requested for generated descriptions.
	DescriptionTone = "Professional, exciting, creator-focused"
	// DescriptionMaxWords is a soft ceiling asked of the model. It is not
	// enforced on the returned text.
	DescriptionMaxWords = 150

	noRecordContext = "User is viewing the main portfolio page."
)

// BuildContext returns the system context for a chat session. When current
// is set, its title and description are appended as situational context.
func BuildContext(profile domain.Profile, experiences []domain.Experience, skills []string, current domain.Optional[domain.Record]) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an AI Assistant representing %s on their portfolio website.\n\n", profile.Name)

	fmt.Fprintf(&b, "%s's Profile:\n", profile.Name)
	fmt.Fprintf(&b, "- Role: %s\n", profile.Role)
	fmt.Fprintf(&b, "- Bio: %s\n", profile.Bio)
	fmt.Fprintf(&b, "- Location: %s\n", profile.Location)
	fmt.Fprintf(&b, "- Top Skills: %s\n\n", strings.Join(skills, ", "))

	b.WriteString("Experience Highlights:\n")
	for _, e := range experiences {
		fmt.Fprintf(&b, "- %s at %s (%s)\n", e.Role, e.Organization, e.Period)
	}
	b.WriteString("\n")

	b.WriteString("Your Goal:\n")
	fmt.Fprintf(&b, "Answer questions about %s's skills, experience, and the specific project being viewed.\n", profile.Name)
	b.WriteString("Be helpful, professional, but casual like a YouTube creator.\n")
	fmt.Fprintf(&b, "If asked about contact info, direct them to: %s.\n\n", profile.Email)

	b.WriteString(recordContext(current))
	b.WriteString("\n")

	return b.String()
}

// SystemContext is BuildContext over a whole persona.
func SystemContext(p domain.Persona, current domain.Optional[domain.Record]) string {
	return BuildContext(p.Profile, p.Experiences, p.Skills, current)
}

func recordContext(current domain.Optional[domain.Record]) string {
	r, ok := current.Get()
	if !ok {
		return noRecordContext
	}
	return fmt.Sprintf("Current Project Context: %s. Description: %s", r.Title, r.Description)
}

// BuildDescriptionPrompt returns the one-shot prompt asking for a marketing
// description of r.
func BuildDescriptionPrompt(r domain.Record) string {
	var b strings.Builder

	b.WriteString("You are a professional copywriter for a creative portfolio.\n")
	b.WriteString("Write a compelling, YouTube-description style summary for the following project.\n\n")

	fmt.Fprintf(&b, "Project Title: %s\n", r.Title)
	fmt.Fprintf(&b, "Key Skills Used: %s\n", strings.Join(r.Skills, ", "))
	fmt.Fprintf(&b, "Tags: %s\n", strings.Join(r.Tags, ", "))
	fmt.Fprintf(&b, "Original Description: %s\n\n", r.Description)

	fmt.Fprintf(&b, "Tone: %s. Use emojis sparingly.\n", DescriptionTone)
	fmt.Fprintf(&b, "Max length: %d words.\n", DescriptionMaxWords)

	return b.String()
}
