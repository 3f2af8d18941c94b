package agent_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itzayush21/travy/plugin/ai/agent"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name string
		last *agent.Message
		want agent.TurnState
	}{
		{
			name: "nil message finishes",
			last: nil,
			want: agent.StateDone,
		},
		{
			name: "plain assistant reply finishes",
			last: &agent.Message{Role: agent.RoleAssistant, Content: "here is your plan"},
			want: agent.StateDone,
		},
		{
			name: "assistant with tool calls awaits tools",
			last: &agent.Message{
				Role:      agent.RoleAssistant,
				ToolCalls: []agent.ToolCall{{ID: "c1", Name: "tavily_search", Arguments: `{"query":"x"}`}},
			},
			want: agent.StateAwaitingTools,
		},
		{
			name: "tool calls with empty content still await tools",
			last: &agent.Message{
				Role:      agent.RoleAssistant,
				Content:   "",
				ToolCalls: []agent.ToolCall{{ID: "c1", Name: "tripadvisor_restaurants"}},
			},
			want: agent.StateAwaitingTools,
		},
		{
			name: "non-assistant role finishes",
			last: &agent.Message{Role: agent.RoleTool, ToolCalls: []agent.ToolCall{{ID: "c1"}}},
			want: agent.StateDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, agent.Route(tt.last))
			// Routing must not depend on hidden state.
			require.Equal(t, tt.want, agent.Route(tt.last))
		})
	}
}

func TestTurnStateString(t *testing.T) {
	require.Equal(t, "AWAITING_MODEL", agent.StateAwaitingModel.String())
	require.Equal(t, "AWAITING_TOOLS", agent.StateAwaitingTools.String())
	require.Equal(t, "DONE", agent.StateDone.String())
	require.Equal(t, "UNKNOWN", agent.TurnState(99).String())
}
