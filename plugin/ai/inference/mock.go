package inference

import (
	"context"
	"sync"

	"github.com/itzayush21/travy/plugin/ai/agent"
)

// MockClient replays a scripted sequence of replies or errors, one per
// Complete call.
type MockClient struct {
	mu sync.Mutex

	Replies []agent.Message
	Errs    []error

	Calls        int
	LastMessages []agent.Message
	LastParams   agent.ModelParams
	LastTools    []agent.ToolDef
}

// NewMockClient creates a MockClient replaying the given replies in order.
func NewMockClient(replies ...agent.Message) *MockClient {
	return &MockClient{Replies: replies}
}

func (m *MockClient) Complete(ctx context.Context, msgs []agent.Message, params agent.ModelParams, tools []agent.ToolDef) (*agent.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.Calls
	m.Calls++
	m.LastMessages = append([]agent.Message(nil), msgs...)
	m.LastParams = params
	m.LastTools = tools

	if i < len(m.Errs) && m.Errs[i] != nil {
		return nil, m.Errs[i]
	}
	if i < len(m.Replies) {
		reply := m.Replies[i]
		return &reply, nil
	}
	reply := agent.AssistantMessage("ok")
	return &reply, nil
}

var _ agent.CompletionClient = (*MockClient)(nil)
