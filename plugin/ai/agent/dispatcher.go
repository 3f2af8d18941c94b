package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Dispatcher resolves and executes the tool calls of one assistant message.
// It never aborts the turn: every requested call yields exactly one tool
// message, in request order, with failures captured as tagged text so the
// model can see them on the next completion.
type Dispatcher struct {
	registry *ToolRegistry
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher over the given registry.
func NewDispatcher(registry *ToolRegistry, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{registry: registry, logger: logger}
}

// Dispatch executes the requested calls sequentially and returns one
// role=tool message per call, in the same order.
func (d *Dispatcher) Dispatch(ctx context.Context, calls []ToolCall) []Message {
	results := make([]Message, 0, len(calls))
	for _, call := range calls {
		results = append(results, d.dispatchOne(ctx, call))
	}
	return results
}

func (d *Dispatcher) dispatchOne(ctx context.Context, call ToolCall) Message {
	tool, ok := d.registry.Get(call.Name)
	if !ok {
		err := fmt.Errorf("%w %q", ErrToolNotFound, call.Name)
		d.logger.Warn("unknown tool requested",
			slog.String("tool", call.Name))
		return ToolMessage(call.ID, "error: "+err.Error())
	}

	start := time.Now()
	output, err := tool.Invoke(ctx, call.Arguments)
	latency := time.Since(start)
	if err != nil {
		d.logger.Warn("tool call failed",
			slog.String("tool", call.Name),
			slog.Int64("latency_ms", latency.Milliseconds()),
			slog.String("error", err.Error()))
		return ToolMessage(call.ID, fmt.Sprintf("[%s error] %v", call.Name, err))
	}

	d.logger.Debug("tool call completed",
		slog.String("tool", call.Name),
		slog.Int64("latency_ms", latency.Milliseconds()),
		slog.Int("output_len", len(output)))
	return ToolMessage(call.ID, output)
}
