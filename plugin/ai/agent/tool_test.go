package agent_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/itzayush21/travy/plugin/ai/agent"
)

func TestBaseToolInvoke(t *testing.T) {
	tool := agent.NewBaseTool("upper", "uppercases the arguments",
		func(ctx context.Context, arguments string) (string, error) {
			return strings.ToUpper(arguments), nil
		})

	out, err := tool.Invoke(context.Background(), `{"query":"goa"}`)
	require.NoError(t, err)
	require.Equal(t, `{"QUERY":"GOA"}`, out)
}

func TestBaseToolRejectsEmptyArguments(t *testing.T) {
	tool := echoTool("echo")

	_, err := tool.Invoke(context.Background(), "   ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "arguments cannot be empty")
}

func TestBaseToolRejectsEmptyResult(t *testing.T) {
	tool := agent.NewBaseTool("blank", "returns nothing",
		func(ctx context.Context, arguments string) (string, error) {
			return "  \n", nil
		})

	_, err := tool.Invoke(context.Background(), `{"query":"x"}`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty result")
}

func TestBaseToolCustomValidator(t *testing.T) {
	tool := agent.NewBaseTool("strict", "requires a city field",
		func(ctx context.Context, arguments string) (string, error) {
			return "ok", nil
		},
		agent.WithValidator(func(arguments string) error {
			if !strings.Contains(arguments, "city") {
				return fmt.Errorf("city is required")
			}
			return nil
		}))

	_, err := tool.Invoke(context.Background(), `{"query":"x"}`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "city is required")

	out, err := tool.Invoke(context.Background(), `{"city":"Pune"}`)
	require.NoError(t, err)
	require.Equal(t, "ok", out)
}

func TestBaseToolTimeout(t *testing.T) {
	tool := agent.NewBaseTool("slow", "waits for the context",
		func(ctx context.Context, arguments string) (string, error) {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Second):
				return "too late", nil
			}
		},
		agent.WithTimeout(10*time.Millisecond))

	_, err := tool.Invoke(context.Background(), `{"query":"x"}`)
	require.Error(t, err)
	require.Contains(t, err.Error(), context.DeadlineExceeded.Error())
}

func TestBaseToolDefaultParameters(t *testing.T) {
	tool := echoTool("echo")
	params := tool.Parameters()
	require.Equal(t, "object", params["type"])
	require.Contains(t, params["properties"], "query")
}

func TestToolRegistry(t *testing.T) {
	registry, err := agent.NewToolRegistry(echoTool("beta"), echoTool("alpha"))
	require.NoError(t, err)
	require.Equal(t, 2, registry.Count())

	// Names come back sorted.
	require.Equal(t, []string{"alpha", "beta"}, registry.List())

	_, ok := registry.Get("alpha")
	require.True(t, ok)
	_, ok = registry.Get("gamma")
	require.False(t, ok)

	defs := registry.Defs()
	require.Len(t, defs, 2)
	require.Equal(t, "alpha", defs[0].Name)

	require.Error(t, registry.Register(echoTool("alpha")))
	require.Error(t, registry.Register(nil))
}
