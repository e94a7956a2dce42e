package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/MrSnakeDoc/showcase/internal/logger"
)

// fakeModel is an llms.Model that streams canned chunks.
type fakeModel struct {
	mu      sync.Mutex
	calls   [][]llms.MessageContent
	models  []string
	chunks  []string
	content string
	err     error
}

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, o := range options {
		o(&opts)
	}

	m.mu.Lock()
	m.calls = append(m.calls, messages)
	m.models = append(m.models, opts.Model)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if opts.StreamingFunc != nil {
		for _, c := range m.chunks {
			if err := opts.StreamingFunc(ctx, []byte(c)); err != nil {
				return nil, err
			}
		}
	}

	content := m.content
	if content == "" {
		content = strings.Join(m.chunks, "")
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: content}}}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func drain(t *testing.T, ch <-chan Chunk) (string, error) {
	t.Helper()
	var b strings.Builder
	for c := range ch {
		if c.Err != nil {
			return b.String(), c.Err
		}
		b.WriteString(c.Text)
	}
	return b.String(), nil
}

func TestNewGatewayWithoutCredential(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "no key", cfg: Config{Provider: ProviderGoogleAI, Model: "gemini-2.5-flash"}},
		{name: "ollama without host", cfg: Config{Provider: ProviderOllama, APIKey: "ignored"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, err := NewGateway(context.Background(), tt.cfg, logger.NewNop())

			require.NoError(t, err)
			assert.False(t, gw.Available())
			_, err = gw.OpenConversation(context.Background(), "ctx")
			assert.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestNewGatewayUnsupportedProvider(t *testing.T) {
	_, err := NewGateway(context.Background(), Config{Provider: "bard", APIKey: "k"}, logger.NewNop())

	assert.ErrorContains(t, err, "unsupported AI provider")
}

func TestLLMGatewayGenerateOnce(t *testing.T) {
	model := &fakeModel{content: "A reel."}
	gw := NewLLMGateway(model, "gemini-2.5-flash")

	got, err := gw.GenerateOnce(context.Background(), "describe")

	require.NoError(t, err)
	assert.Equal(t, "A reel.", got)
	assert.Equal(t, []string{"gemini-2.5-flash"}, model.models)
	assert.Equal(t, "gemini-2.5-flash", gw.Model())
}

func TestLLMGatewayGenerateOnceWrapsFailure(t *testing.T) {
	gw := NewLLMGateway(&fakeModel{err: errors.New("quota")}, "")

	_, err := gw.GenerateOnce(context.Background(), "describe")

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "generate", te.Op)
	assert.ErrorContains(t, err, "quota")
}

func TestLLMConversationStreamsAndKeepsHistory(t *testing.T) {
	model := &fakeModel{chunks: []string{"Hi ", "there"}}
	gw := NewLLMGateway(model, "")
	conv, err := gw.OpenConversation(context.Background(), "system context")
	require.NoError(t, err)

	ch, err := conv.Send(context.Background(), "hello")
	require.NoError(t, err)
	reply, err := drain(t, ch)
	require.NoError(t, err)
	assert.Equal(t, "Hi there", reply)

	ch, err = conv.Send(context.Background(), "again")
	require.NoError(t, err)
	_, err = drain(t, ch)
	require.NoError(t, err)

	require.Len(t, model.calls, 2)
	second := model.calls[1]
	require.Len(t, second, 4)
	assert.Equal(t, llms.ChatMessageTypeSystem, second[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, second[1].Role)
	assert.Equal(t, llms.ChatMessageTypeAI, second[2].Role)
	assert.Equal(t, llms.TextContent{Text: "Hi there"}, second[2].Parts[0])
	assert.Equal(t, llms.TextContent{Text: "again"}, second[3].Parts[0])
}

func TestLLMConversationFallsBackToResponseContent(t *testing.T) {
	gw := NewLLMGateway(&fakeModel{content: "whole reply"}, "")
	conv, err := gw.OpenConversation(context.Background(), "sys")
	require.NoError(t, err)

	ch, err := conv.Send(context.Background(), "hello")
	require.NoError(t, err)
	reply, err := drain(t, ch)

	require.NoError(t, err)
	assert.Equal(t, "whole reply", reply)
}

func TestLLMConversationFailedTurnNotKept(t *testing.T) {
	model := &fakeModel{err: errors.New("boom")}
	gw := NewLLMGateway(model, "")
	conv, err := gw.OpenConversation(context.Background(), "sys")
	require.NoError(t, err)

	ch, err := conv.Send(context.Background(), "one")
	require.NoError(t, err)
	_, err = drain(t, ch)
	var te *TransportError
	require.ErrorAs(t, err, &te)

	model.err = nil
	ch, err = conv.Send(context.Background(), "two")
	require.NoError(t, err)
	_, err = drain(t, ch)
	require.NoError(t, err)

	assert.Len(t, model.calls[1], 2, "system + second human turn only")
}

func TestLLMConversationClosed(t *testing.T) {
	gw := NewLLMGateway(&fakeModel{}, "")
	conv, err := gw.OpenConversation(context.Background(), "sys")
	require.NoError(t, err)
	require.NoError(t, conv.Close())

	_, err = conv.Send(context.Background(), "hello")

	assert.ErrorIs(t, err, ErrClosed)
}
