package session

import (
	"context"
	"sync"

	"github.com/itzayush21/travy/plugin/ai/agent"
)

// MockStore is an instrumented in-memory session store for tests. It
// counts calls and can be primed to fail.
type MockStore struct {
	mu sync.Mutex

	sessions map[string][]agent.Message

	GetOrCreateCalls int
	AppendCalls      int
	AppendErr        error
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{sessions: make(map[string][]agent.Message)}
}

func (m *MockStore) GetOrCreate(ctx context.Context, sessionID string, initial []agent.Message) (*agent.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetOrCreateCalls++
	if _, ok := m.sessions[sessionID]; !ok {
		m.sessions[sessionID] = append([]agent.Message(nil), initial...)
	}
	return &agent.Session{
		ID:      sessionID,
		History: append([]agent.Message(nil), m.sessions[sessionID]...),
	}, nil
}

func (m *MockStore) Append(ctx context.Context, sessionID string, msgs ...agent.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AppendCalls++
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.sessions[sessionID] = append(m.sessions[sessionID], msgs...)
	return nil
}

func (m *MockStore) History(ctx context.Context, sessionID string) ([]agent.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]agent.Message(nil), m.sessions[sessionID]...), nil
}

var _ agent.SessionStore = (*MockStore)(nil)
