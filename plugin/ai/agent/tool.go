package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Tool is the interface for agent tools. Arguments arrive as the raw JSON
// object string from the model's tool call.
type Tool interface {
	// Name returns the name of the tool.
	Name() string

	// Description returns a description of what the tool does.
	Description() string

	// Parameters returns the JSON-schema object describing the arguments.
	Parameters() map[string]any

	// Invoke executes the tool with the given JSON arguments.
	Invoke(ctx context.Context, arguments string) (string, error)
}

// BaseTool provides a reusable base implementation for tools.
type BaseTool struct {
	name        string
	description string
	parameters  map[string]any
	execute     func(ctx context.Context, arguments string) (string, error)
	validate    func(arguments string) error
	timeout     time.Duration
}

// ToolOption is a function that configures a BaseTool.
type ToolOption func(*BaseTool)

// WithTimeout sets a timeout for tool execution.
func WithTimeout(timeout time.Duration) ToolOption {
	return func(t *BaseTool) {
		t.timeout = timeout
	}
}

// WithValidator sets a custom arguments validator.
func WithValidator(validator func(arguments string) error) ToolOption {
	return func(t *BaseTool) {
		t.validate = validator
	}
}

// WithParameters sets the JSON-schema description of the arguments.
func WithParameters(parameters map[string]any) ToolOption {
	return func(t *BaseTool) {
		t.parameters = parameters
	}
}

// NewBaseTool creates a new BaseTool.
func NewBaseTool(
	name string,
	description string,
	execute func(ctx context.Context, arguments string) (string, error),
	opts ...ToolOption,
) *BaseTool {
	tool := &BaseTool{
		name:        name,
		description: description,
		execute:     execute,
		timeout:     30 * time.Second,
		validate:    defaultValidator,
	}

	for _, opt := range opts {
		opt(tool)
	}

	return tool
}

// Name returns the name of the tool.
func (t *BaseTool) Name() string {
	return t.name
}

// Description returns the description of the tool.
func (t *BaseTool) Description() string {
	return t.description
}

// Parameters returns the argument schema. Defaults to a single required
// string field "query".
func (t *BaseTool) Parameters() map[string]any {
	if t.parameters != nil {
		return t.parameters
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{"type": "string"},
		},
		"required": []string{"query"},
	}
}

// Invoke executes the tool with validation and a per-call timeout.
func (t *BaseTool) Invoke(ctx context.Context, arguments string) (string, error) {
	if err := t.validate(arguments); err != nil {
		return "", fmt.Errorf("argument validation failed: %w", err)
	}

	execCtx := ctx
	if t.timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	result, err := t.execute(execCtx, arguments)
	if err != nil {
		return "", fmt.Errorf("tool execution failed: %w", err)
	}

	if strings.TrimSpace(result) == "" {
		return "", fmt.Errorf("tool returned empty result")
	}

	return result, nil
}

func defaultValidator(arguments string) error {
	if strings.TrimSpace(arguments) == "" {
		return fmt.Errorf("arguments cannot be empty")
	}
	return nil
}

// ToolRegistry manages a collection of tools.
type ToolRegistry struct {
	tools map[string]Tool
}

// NewToolRegistry creates a new ToolRegistry.
func NewToolRegistry(tools ...Tool) (*ToolRegistry, error) {
	r := &ToolRegistry{tools: make(map[string]Tool)}
	for _, tool := range tools {
		if err := r.Register(tool); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a tool to the registry.
func (r *ToolRegistry) Register(tool Tool) error {
	if tool == nil {
		return fmt.Errorf("tool cannot be nil")
	}
	name := tool.Name()
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %s already registered", name)
	}
	r.tools[name] = tool
	return nil
}

// Get retrieves a tool by name.
func (r *ToolRegistry) Get(name string) (Tool, bool) {
	tool, exists := r.tools[name]
	return tool, exists
}

// List returns all registered tool names, sorted.
func (r *ToolRegistry) List() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Defs returns the registered tools as model-facing definitions.
func (r *ToolRegistry) Defs() []ToolDef {
	defs := make([]ToolDef, 0, len(r.tools))
	for _, name := range r.List() {
		tool := r.tools[name]
		defs = append(defs, ToolDef{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return defs
}

// Count returns the number of registered tools.
func (r *ToolRegistry) Count() int {
	return len(r.tools)
}
