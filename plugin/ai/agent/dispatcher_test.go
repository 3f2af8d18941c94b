package agent_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itzayush21/travy/plugin/ai/agent"
)

func echoTool(name string) *agent.BaseTool {
	return agent.NewBaseTool(name, "echoes its arguments",
		func(ctx context.Context, arguments string) (string, error) {
			return name + ":" + arguments, nil
		})
}

func failingTool(name string, err error) *agent.BaseTool {
	return agent.NewBaseTool(name, "always fails",
		func(ctx context.Context, arguments string) (string, error) {
			return "", err
		})
}

func TestDispatchOneResultPerCallInOrder(t *testing.T) {
	registry, err := agent.NewToolRegistry(echoTool("alpha"), echoTool("beta"))
	require.NoError(t, err)
	d := agent.NewDispatcher(registry, nil)

	calls := []agent.ToolCall{
		{ID: "c1", Name: "beta", Arguments: `{"query":"one"}`},
		{ID: "c2", Name: "alpha", Arguments: `{"query":"two"}`},
		{ID: "c3", Name: "beta", Arguments: `{"query":"three"}`},
	}
	results := d.Dispatch(context.Background(), calls)

	require.Len(t, results, len(calls))
	for i, result := range results {
		require.Equal(t, agent.RoleTool, result.Role)
		require.Equal(t, calls[i].ID, result.ToolCallID)
	}
	require.Equal(t, `beta:{"query":"one"}`, results[0].Content)
	require.Equal(t, `alpha:{"query":"two"}`, results[1].Content)
	require.Equal(t, `beta:{"query":"three"}`, results[2].Content)
}

func TestDispatchUnknownToolIsRecoverable(t *testing.T) {
	registry, err := agent.NewToolRegistry(echoTool("alpha"))
	require.NoError(t, err)
	d := agent.NewDispatcher(registry, nil)

	results := d.Dispatch(context.Background(), []agent.ToolCall{
		{ID: "c1", Name: "alpha", Arguments: `{"query":"ok"}`},
		{ID: "c2", Name: "no_such_tool", Arguments: `{}`},
	})

	require.Len(t, results, 2)
	require.Equal(t, "c2", results[1].ToolCallID)
	require.Equal(t, `error: unknown tool "no_such_tool"`, results[1].Content)
	require.Contains(t, results[1].Content, agent.ErrToolNotFound.Error())
}

func TestDispatchToolFailureBecomesTaggedText(t *testing.T) {
	boom := errors.New("upstream unavailable")
	registry, err := agent.NewToolRegistry(failingTool("flaky", boom))
	require.NoError(t, err)
	d := agent.NewDispatcher(registry, nil)

	results := d.Dispatch(context.Background(), []agent.ToolCall{
		{ID: "c1", Name: "flaky", Arguments: `{"query":"x"}`},
	})

	require.Len(t, results, 1)
	require.Equal(t, agent.RoleTool, results[0].Role)
	require.Contains(t, results[0].Content, "[flaky error]")
	require.Contains(t, results[0].Content, "upstream unavailable")
}

func TestDispatchEmptyCalls(t *testing.T) {
	registry, err := agent.NewToolRegistry()
	require.NoError(t, err)
	d := agent.NewDispatcher(registry, nil)

	require.Empty(t, d.Dispatch(context.Background(), nil))
}
