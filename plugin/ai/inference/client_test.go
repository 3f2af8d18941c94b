package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/itzayush21/travy/plugin/ai/agent"
)

func completionServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func testParams() agent.ModelParams {
	return agent.ModelParams{
		Model:       "gemma2-9b-it",
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   2048,
		Timeout:     5 * time.Second,
	}
}

func TestNewGroqClientRequiresAPIKey(t *testing.T) {
	_, err := NewGroqClient("", "")
	require.ErrorIs(t, err, agent.ErrMissingCredential)
}

func TestCompleteReturnsAssistantReply(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "gemma2-9b-it", req["model"])

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "Day 1: arrive."}},
			},
		})
	})

	c, err := NewGroqClient("test-key", srv.URL)
	require.NoError(t, err)

	reply, err := c.Complete(context.Background(), []agent.Message{agent.UserMessage("plan")}, testParams(), nil)
	require.NoError(t, err)
	require.Equal(t, agent.RoleAssistant, reply.Role)
	require.Equal(t, "Day 1: arrive.", reply.Content)
	require.Empty(t, reply.ToolCalls)
}

func TestCompleteParsesToolCalls(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{
					"role":    "assistant",
					"content": "",
					"tool_calls": []map[string]any{
						{
							"id":   "call_1",
							"type": "function",
							"function": map[string]any{
								"name":      "tavily_search",
								"arguments": `{"query":"goa beaches"}`,
							},
						},
					},
				}},
			},
		})
	})

	c, err := NewGroqClient("test-key", srv.URL)
	require.NoError(t, err)

	reply, err := c.Complete(context.Background(), []agent.Message{agent.UserMessage("plan")}, testParams(), nil)
	require.NoError(t, err)
	require.Len(t, reply.ToolCalls, 1)
	require.Equal(t, "call_1", reply.ToolCalls[0].ID)
	require.Equal(t, "tavily_search", reply.ToolCalls[0].Name)
	require.Equal(t, `{"query":"goa beaches"}`, reply.ToolCalls[0].Arguments)
}

func TestCompleteSendsToolDefinitions(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Tools []struct {
				Type     string `json:"type"`
				Function struct {
					Name string `json:"name"`
				} `json:"function"`
			} `json:"tools"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Tools, 1)
		require.Equal(t, "function", req.Tools[0].Type)
		require.Equal(t, "tavily_search", req.Tools[0].Function.Name)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "ok"}},
			},
		})
	})

	c, err := NewGroqClient("test-key", srv.URL)
	require.NoError(t, err)

	tools := []agent.ToolDef{{
		Name:        "tavily_search",
		Description: "web search",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{"query": map[string]any{"type": "string"}},
			"required":   []string{"query"},
		},
	}}
	_, err = c.Complete(context.Background(), []agent.Message{agent.UserMessage("plan")}, testParams(), tools)
	require.NoError(t, err)
}

func TestCompleteAPIErrorIsTransport(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "rate limit exceeded", "type": "requests"},
		})
	})

	c, err := NewGroqClient("test-key", srv.URL)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), []agent.Message{agent.UserMessage("plan")}, testParams(), nil)
	require.ErrorIs(t, err, agent.ErrTransport)
	require.Contains(t, err.Error(), "rate limit exceeded")
}

func TestCompleteTimeout(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "late"}},
			},
		})
	})

	c, err := NewGroqClient("test-key", srv.URL)
	require.NoError(t, err)

	params := testParams()
	params.Timeout = 20 * time.Millisecond
	_, err = c.Complete(context.Background(), []agent.Message{agent.UserMessage("plan")}, params, nil)
	require.ErrorIs(t, err, agent.ErrTimeout)
}

func TestCompleteNoChoicesIsMalformed(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	c, err := NewGroqClient("test-key", srv.URL)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), []agent.Message{agent.UserMessage("plan")}, testParams(), nil)
	require.ErrorIs(t, err, agent.ErrMalformedResponse)
}

func TestCompleteEmptyAssistantMessageIsMalformed(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": ""}},
			},
		})
	})

	c, err := NewGroqClient("test-key", srv.URL)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), []agent.Message{agent.UserMessage("plan")}, testParams(), nil)
	require.ErrorIs(t, err, agent.ErrMalformedResponse)
}

func TestCompleteRejectsEmptyHistory(t *testing.T) {
	c, err := NewGroqClient("test-key", "http://localhost:1")
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), nil, testParams(), nil)
	require.ErrorIs(t, err, agent.ErrMalformedResponse)
}
