package agent

import (
	"context"
	"time"
)

// Role identifies who produced a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a model-issued request to invoke a named tool.
// Arguments is the raw JSON object string exactly as the model produced it.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Message is one element of a conversation history. Histories are strictly
// append-only; a Message is never mutated after it has been appended.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// SystemMessage creates a system message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage creates a user message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage creates an assistant message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// ToolMessage creates a tool-result message answering the given tool call.
func ToolMessage(callID, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: callID}
}

// ModelParams are the sampling parameters for one completion request.
type ModelParams struct {
	Model       string
	Temperature float32
	TopP        float32
	MaxTokens   int
	Timeout     time.Duration
}

// ToolDef describes a registered tool to the model.
type ToolDef struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// CompletionClient produces one assistant message from an ordered history.
// Implementations must return a typed error (ErrTransport, ErrTimeout,
// ErrMalformedResponse) instead of panicking past the call boundary.
type CompletionClient interface {
	Complete(ctx context.Context, msgs []Message, params ModelParams, tools []ToolDef) (*Message, error)
}

// SessionStore keeps the ordered message history for each session.
// GetOrCreate is idempotent: a second call with an existing id ignores
// initial and returns the existing history unchanged.
type SessionStore interface {
	GetOrCreate(ctx context.Context, sessionID string, initial []Message) (*Session, error)
	Append(ctx context.Context, sessionID string, msgs ...Message) error
	History(ctx context.Context, sessionID string) ([]Message, error)
}

// Session is a snapshot of one conversation's history.
type Session struct {
	ID        string    `json:"id"`
	AgentName string    `json:"agent_name"`
	History   []Message `json:"history"`
	CreatedAt int64     `json:"created_at"`
	UpdatedAt int64     `json:"updated_at"`
}
