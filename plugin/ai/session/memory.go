// Package session provides the session store implementations used by the
// agent engine: an in-process map for single-node deployments and a
// database-backed store for durable histories.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/itzayush21/travy/plugin/ai/agent"
)

// MemoryStore keeps session histories in a process-wide map. Histories are
// created lazily and never evicted; long-running deployments that care
// about memory growth should use the database-backed store or restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*agent.Session
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*agent.Session)}
}

// GetOrCreate returns the session for the id, creating it with the initial
// messages on first reference. A second call with an existing id ignores
// initial and returns the stored history unchanged.
func (s *MemoryStore) GetOrCreate(ctx context.Context, sessionID string, initial []agent.Message) (*agent.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[sessionID]; ok {
		return snapshot(sess), nil
	}

	now := time.Now().Unix()
	sess := &agent.Session{
		ID:        sessionID,
		History:   append([]agent.Message(nil), initial...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[sessionID] = sess
	return snapshot(sess), nil
}

// Append adds messages to the end of the session's history.
func (s *MemoryStore) Append(ctx context.Context, sessionID string, msgs ...agent.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		now := time.Now().Unix()
		sess = &agent.Session{ID: sessionID, CreatedAt: now}
		s.sessions[sessionID] = sess
	}
	sess.History = append(sess.History, msgs...)
	sess.UpdatedAt = time.Now().Unix()
	return nil
}

// History returns a copy of the session's ordered history.
func (s *MemoryStore) History(ctx context.Context, sessionID string) ([]agent.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return append([]agent.Message(nil), sess.History...), nil
}

// Len reports the number of sessions currently held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// snapshot copies a session so callers cannot mutate stored history.
func snapshot(sess *agent.Session) *agent.Session {
	out := *sess
	out.History = append([]agent.Message(nil), sess.History...)
	return &out
}

var _ agent.SessionStore = (*MemoryStore)(nil)
