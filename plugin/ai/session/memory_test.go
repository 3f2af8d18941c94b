package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itzayush21/travy/plugin/ai/agent"
)

func TestMemoryStoreGetOrCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first, err := s.GetOrCreate(ctx, "itinerary:p1:u1", []agent.Message{agent.SystemMessage("prompt")})
	require.NoError(t, err)
	require.Len(t, first.History, 1)

	// A second call with different initial messages returns the existing
	// history unchanged.
	second, err := s.GetOrCreate(ctx, "itinerary:p1:u1", []agent.Message{agent.SystemMessage("other prompt")})
	require.NoError(t, err)
	require.Len(t, second.History, 1)
	require.Equal(t, "prompt", second.History[0].Content)
	require.Equal(t, 1, s.Len())
}

func TestMemoryStoreAppendPreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.GetOrCreate(ctx, "budget:p1:u1", []agent.Message{agent.SystemMessage("prompt")})
	require.NoError(t, err)

	require.NoError(t, s.Append(ctx, "budget:p1:u1", agent.UserMessage("first")))
	require.NoError(t, s.Append(ctx, "budget:p1:u1",
		agent.AssistantMessage("reply"),
		agent.ToolMessage("c1", "tool output")))

	history, err := s.History(ctx, "budget:p1:u1")
	require.NoError(t, err)
	require.Len(t, history, 4)
	require.Equal(t, agent.RoleSystem, history[0].Role)
	require.Equal(t, "first", history[1].Content)
	require.Equal(t, "reply", history[2].Content)
	require.Equal(t, "c1", history[3].ToolCallID)
}

func TestMemoryStoreSnapshotsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	sess, err := s.GetOrCreate(ctx, "packing:p1:u1", []agent.Message{agent.SystemMessage("prompt")})
	require.NoError(t, err)

	// Mutating the returned snapshot must not leak into the store.
	sess.History[0].Content = "tampered"
	sess.History = append(sess.History, agent.UserMessage("injected"))

	history, err := s.History(ctx, "packing:p1:u1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "prompt", history[0].Content)
}

func TestMemoryStoreUnknownSessionHistory(t *testing.T) {
	s := NewMemoryStore()
	history, err := s.History(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, history)
}
