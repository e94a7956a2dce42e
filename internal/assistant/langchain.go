package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/MrSnakeDoc/showcase/internal/logger"
)

// Provider selects the langchaingo backend.
type Provider string

const (
	ProviderGoogleAI  Provider = "googleai"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderOllama    Provider = "ollama"
)

// Config selects and authenticates the backend.
type Config struct {
	Provider   Provider
	APIKey     string
	Model      string // ex: gemini-2.5-flash
	OllamaHost string // only for ProviderOllama
}

// credentialed reports whether cfg carries what its provider needs.
// Ollama needs a host instead of a key.
func (c Config) credentialed() bool {
	if c.Provider == ProviderOllama {
		return c.OllamaHost != ""
	}
	return c.APIKey != ""
}

// NewGateway builds the gateway for cfg. A missing credential is not an
// error: it yields Unavailable so callers fall back to degraded mode.
func NewGateway(ctx context.Context, cfg Config, log logger.Logger) (Gateway, error) {
	if !cfg.credentialed() {
		log.Warn("no AI credential configured, assistant runs in degraded mode",
			logger.String("provider", string(cfg.Provider)))
		return Unavailable{}, nil
	}

	var model llms.Model
	var err error

	switch cfg.Provider {
	case ProviderGoogleAI, "":
		model, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create googleai model: %w", err)
		}

	case ProviderOpenAI:
		model, err = openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case ProviderAnthropic:
		model, err = anthropic.New(
			anthropic.WithToken(cfg.APIKey),
			anthropic.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	case ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}

	log.Info("assistant gateway ready",
		logger.String("provider", string(cfg.Provider)),
		logger.String("model", cfg.Model))

	return NewLLMGateway(model, cfg.Model), nil
}

// LLMGateway is a Gateway over any langchaingo model.
type LLMGateway struct {
	llm       llms.Model
	modelName string
}

// NewLLMGateway wraps an already built model.
func NewLLMGateway(model llms.Model, modelName string) *LLMGateway {
	return &LLMGateway{
		llm:       model,
		modelName: modelName,
	}
}

func (g *LLMGateway) Available() bool { return true }

// Model returns the model name.
func (g *LLMGateway) Model() string { return g.modelName }

func (g *LLMGateway) callOptions(extra ...llms.CallOption) []llms.CallOption {
	if g.modelName == "" {
		return extra
	}
	return append([]llms.CallOption{llms.WithModel(g.modelName)}, extra...)
}

// GenerateOnce sends a single prompt. One attempt, no retry.
func (g *LLMGateway) GenerateOnce(ctx context.Context, prompt string) (string, error) {
	response, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, g.callOptions()...)
	if err != nil {
		return "", &TransportError{Op: "generate", Err: err}
	}
	return response, nil
}

// OpenConversation starts a history seeded with the system context.
func (g *LLMGateway) OpenConversation(_ context.Context, systemContext string) (Conversation, error) {
	return &llmConversation{
		gateway: g,
		history: []llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, systemContext),
		},
	}, nil
}

// llmConversation keeps the turn history and replays it on every Send.
type llmConversation struct {
	gateway *LLMGateway

	mu      sync.Mutex
	history []llms.MessageContent
	closed  bool
}

func (c *llmConversation) Send(ctx context.Context, text string) (<-chan Chunk, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	messages := append(append([]llms.MessageContent(nil), c.history...),
		llms.TextParts(llms.ChatMessageTypeHuman, text))
	c.mu.Unlock()

	out := make(chan Chunk)
	go func() {
		defer close(out)

		var reply strings.Builder
		stream := func(ctx context.Context, chunk []byte) error {
			if len(chunk) == 0 {
				return nil
			}
			select {
			case out <- Chunk{Text: string(chunk)}:
				reply.Write(chunk)
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		resp, err := c.gateway.llm.GenerateContent(ctx, messages,
			c.gateway.callOptions(llms.WithStreamingFunc(stream))...)
		if err != nil {
			select {
			case out <- Chunk{Err: &TransportError{Op: "stream", Err: err}}:
			case <-ctx.Done():
			}
			return
		}

		// some backends ignore the streaming func and only fill the response
		if reply.Len() == 0 && resp != nil && len(resp.Choices) > 0 && resp.Choices[0].Content != "" {
			select {
			case out <- Chunk{Text: resp.Choices[0].Content}:
				reply.WriteString(resp.Choices[0].Content)
			case <-ctx.Done():
				return
			}
		}

		c.commit(messages, reply.String())
	}()

	return out, nil
}

// commit records a completed turn. Failed or aborted turns are not kept.
func (c *llmConversation) commit(messages []llms.MessageContent, reply string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.history = append(messages, llms.TextParts(llms.ChatMessageTypeAI, reply))
}

func (c *llmConversation) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.history = nil
	return nil
}
