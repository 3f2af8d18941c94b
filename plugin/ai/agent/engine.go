package agent

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// defaultMaxIterations bounds how many completion cycles one turn may run.
// A model that keeps requesting tools past this cap fails the turn with
// ErrLoopLimit instead of spinning.
const defaultMaxIterations = 6

// Config parameterizes one agent instance. The engine itself is identical
// across agents; only the prompt, tool set and sampling parameters differ.
type Config struct {
	// Name is the agent identifier, also the session namespace prefix.
	Name string
	// SystemPrompt establishes the agent persona. It is always the first
	// message of every session.
	SystemPrompt string
	// Tools registered for this agent. May be empty.
	Tools []Tool
	// Model holds the sampling parameters for the main loop.
	Model ModelParams
	// Summarize, when set, enables the document pre-pass used by
	// RunTurnWithDocument.
	Summarize *SummarizeConfig
}

// SummarizeConfig drives the single-shot condensing pass applied to raw
// documents before the main turn.
type SummarizeConfig struct {
	SystemPrompt string
	Model        ModelParams
	// Template wraps the condensed text into the user message of the
	// main turn. Must contain one %s verb.
	Template string
}

// Engine runs the bounded tool-calling loop for one agent.
type Engine struct {
	cfg        Config
	client     CompletionClient
	sessions   SessionStore
	dispatcher *Dispatcher
	defs       []ToolDef
	logger     *slog.Logger

	maxIterations int
	locks         *sessionLocks
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxIterations overrides the per-turn completion cycle cap.
func WithMaxIterations(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxIterations = n
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an Engine for the given config.
func NewEngine(cfg Config, client CompletionClient, sessions SessionStore, opts ...Option) (*Engine, error) {
	if client == nil {
		return nil, NewError(cfg.Name, "new", ErrMissingCredential)
	}
	registry, err := NewToolRegistry(cfg.Tools...)
	if err != nil {
		return nil, NewError(cfg.Name, "new", err)
	}

	e := &Engine{
		cfg:           cfg,
		client:        client,
		sessions:      sessions,
		defs:          registry.Defs(),
		maxIterations: defaultMaxIterations,
		logger:        slog.Default(),
		locks:         newSessionLocks(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.dispatcher = NewDispatcher(registry, e.logger)
	return e, nil
}

// Name returns the agent name.
func (e *Engine) Name() string {
	return e.cfg.Name
}

// RunTurn runs one full user turn against the session: append the user
// message, then alternate completion and tool execution until the model
// stops requesting tools. Turns on the same session are serialized; the
// history only ever grows, and the user message is recorded even when the
// assistant side of the turn fails.
func (e *Engine) RunTurn(ctx context.Context, sessionID, userText string) (*Message, error) {
	unlock := e.locks.lock(sessionID)
	defer unlock()

	return e.runTurn(ctx, sessionID, userText)
}

// TryRunTurn is RunTurn without waiting: when a turn is already running on
// the session it returns ErrSessionBusy immediately.
func (e *Engine) TryRunTurn(ctx context.Context, sessionID, userText string) (*Message, error) {
	unlock, ok := e.locks.tryLock(sessionID)
	if !ok {
		return nil, NewError(e.cfg.Name, "run_turn", ErrSessionBusy)
	}
	defer unlock()

	return e.runTurn(ctx, sessionID, userText)
}

func (e *Engine) runTurn(ctx context.Context, sessionID, userText string) (*Message, error) {
	start := time.Now()
	msg, iterations, err := e.runTurnLocked(ctx, sessionID, userText)
	latency := time.Since(start)
	if err != nil {
		e.logger.Error("turn failed",
			slog.String("agent", e.cfg.Name),
			slog.String("session", sessionID),
			slog.Int("iterations", iterations),
			slog.Int64("latency_ms", latency.Milliseconds()),
			slog.String("error", err.Error()))
		return nil, err
	}

	e.logger.Info("turn completed",
		slog.String("agent", e.cfg.Name),
		slog.String("session", sessionID),
		slog.Int("iterations", iterations),
		slog.Int64("latency_ms", latency.Milliseconds()))
	return msg, nil
}

func (e *Engine) runTurnLocked(ctx context.Context, sessionID, userText string) (*Message, int, error) {
	sess, err := e.sessions.GetOrCreate(ctx, sessionID, []Message{SystemMessage(e.cfg.SystemPrompt)})
	if err != nil {
		return nil, 0, NewError(e.cfg.Name, "get_or_create", err)
	}

	user := UserMessage(userText)
	if err := e.sessions.Append(ctx, sessionID, user); err != nil {
		return nil, 0, NewError(e.cfg.Name, "append", err)
	}
	history := append(sess.History, user)

	for i := 0; i < e.maxIterations; i++ {
		reply, err := e.client.Complete(ctx, history, e.cfg.Model, e.defs)
		if err != nil {
			return nil, i, NewError(e.cfg.Name, "complete", err)
		}

		if err := e.sessions.Append(ctx, sessionID, *reply); err != nil {
			return nil, i, NewError(e.cfg.Name, "append", err)
		}
		history = append(history, *reply)

		switch Route(reply) {
		case StateDone:
			return reply, i + 1, nil
		case StateAwaitingTools:
			results := e.dispatcher.Dispatch(ctx, reply.ToolCalls)
			if err := e.sessions.Append(ctx, sessionID, results...); err != nil {
				return nil, i, NewError(e.cfg.Name, "append", err)
			}
			history = append(history, results...)
		}
	}

	return nil, e.maxIterations, NewError(e.cfg.Name, "run_turn", ErrLoopLimit)
}

// sessionLocks serializes turns per session id.
type sessionLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{m: make(map[string]*sync.Mutex)}
}

func (l *sessionLocks) lock(sessionID string) func() {
	l.mu.Lock()
	sm, ok := l.m[sessionID]
	if !ok {
		sm = &sync.Mutex{}
		l.m[sessionID] = sm
	}
	l.mu.Unlock()

	sm.Lock()
	return sm.Unlock
}

func (l *sessionLocks) tryLock(sessionID string) (func(), bool) {
	l.mu.Lock()
	sm, ok := l.m[sessionID]
	if !ok {
		sm = &sync.Mutex{}
		l.m[sessionID] = sm
	}
	l.mu.Unlock()

	if !sm.TryLock() {
		return nil, false
	}
	return sm.Unlock, true
}
