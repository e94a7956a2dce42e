package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/MrSnakeDoc/showcase/internal/domain"
	"github.com/MrSnakeDoc/showcase/internal/logger"
	"github.com/MrSnakeDoc/showcase/internal/prompt"
)

const (
	// DescriptionUnavailable is returned when no credential is configured.
	DescriptionUnavailable = "AI description is not configured. Set SHOWCASE_AI_API_KEY to enable it."
	// DescriptionFailed is returned when the service call fails.
	DescriptionFailed = "Failed to generate description using AI. Please check the server logs for details."
	// DescriptionEmpty is returned when the model replies with nothing.
	DescriptionEmpty = "No description generated."
)

// Description is the outcome of GenerateDescription. Text is always
// renderable; Generated is true only when it came from the model.
type Description struct {
	Text      string `json:"text"`
	Generated bool   `json:"generated"`
}

// GenerateDescription asks the gateway for a marketing description of r.
// It never fails: unavailability and transport errors become fixed texts.
// The result is not saved onto r.
func GenerateDescription(ctx context.Context, gw Gateway, r domain.Record, log logger.Logger) Description {
	if !gw.Available() {
		return Description{Text: DescriptionUnavailable}
	}

	text, err := gw.GenerateOnce(ctx, prompt.BuildDescriptionPrompt(r))
	switch {
	case errors.Is(err, ErrUnavailable):
		return Description{Text: DescriptionUnavailable}
	case err != nil:
		log.Warn("description generation failed",
			logger.String("record_id", r.ID),
			logger.Error(err))
		return Description{Text: DescriptionFailed}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Description{Text: DescriptionEmpty}
	}
	return Description{Text: text, Generated: true}
}
