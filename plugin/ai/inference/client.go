// Package inference implements the completion client against the Groq
// chat-completions endpoint, which speaks the OpenAI protocol.
package inference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/itzayush21/travy/plugin/ai/agent"
)

// DefaultBaseURL is the Groq OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// GroqClient talks to the Groq chat-completions API.
type GroqClient struct {
	client *openai.Client
	logger *slog.Logger
}

// ClientOption configures a GroqClient.
type ClientOption func(*GroqClient)

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *GroqClient) {
		c.logger = logger
	}
}

// NewGroqClient creates a client for the given credentials. An empty API
// key fails fast: the caller must not construct agents without one.
func NewGroqClient(apiKey, baseURL string, opts ...ClientOption) (*GroqClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq: %w", agent.ErrMissingCredential)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = baseURL

	c := &GroqClient{
		client: openai.NewClientWithConfig(clientConfig),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Complete sends the ordered history and returns the assistant reply.
// Each call is bounded by params.Timeout; failures come back as
// ErrTimeout, ErrTransport or ErrMalformedResponse.
func (c *GroqClient) Complete(ctx context.Context, msgs []agent.Message, params agent.ModelParams, tools []agent.ToolDef) (*agent.Message, error) {
	if len(msgs) == 0 {
		return nil, fmt.Errorf("%w: empty message list", agent.ErrMalformedResponse)
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       params.Model,
		Messages:    toOpenAIMessages(msgs),
		Temperature: params.Temperature,
		TopP:        params.TopP,
		MaxTokens:   params.MaxTokens,
		Tools:       toOpenAITools(tools),
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(callCtx, req)
	latency := time.Since(start)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", agent.ErrTimeout, timeout)
		}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: status %d: %s", agent.ErrTransport, apiErr.HTTPStatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("%w: %v", agent.ErrTransport, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", agent.ErrMalformedResponse)
	}

	reply := fromOpenAIMessage(resp.Choices[0].Message)
	if reply.Content == "" && len(reply.ToolCalls) == 0 {
		return nil, fmt.Errorf("%w: empty assistant message", agent.ErrMalformedResponse)
	}

	c.logger.Debug("completion finished",
		slog.String("model", params.Model),
		slog.Int64("latency_ms", latency.Milliseconds()),
		slog.Int("tool_calls", len(reply.ToolCalls)))
	return reply, nil
}

func toOpenAIMessages(msgs []agent.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, msg := range msgs {
		m := openai.ChatCompletionMessage{
			Role:       string(msg.Role),
			Content:    msg.Content,
			ToolCallID: msg.ToolCallID,
		}
		for _, call := range msg.ToolCalls {
			m.ToolCalls = append(m.ToolCalls, openai.ToolCall{
				ID:   call.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      call.Name,
					Arguments: call.Arguments,
				},
			})
		}
		out = append(out, m)
	}
	return out
}

func toOpenAITools(defs []agent.ToolDef) []openai.Tool {
	if len(defs) == 0 {
		return nil
	}
	out := make([]openai.Tool, 0, len(defs))
	for _, def := range defs {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}
	return out
}

func fromOpenAIMessage(msg openai.ChatCompletionMessage) *agent.Message {
	out := &agent.Message{
		Role:    agent.RoleAssistant,
		Content: msg.Content,
	}
	for _, call := range msg.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, agent.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
	return out
}

var _ agent.CompletionClient = (*GroqClient)(nil)
