// Package agent implements the stateful tool-calling loop shared by all
// travel agents. One Engine parameterized by Config replaces per-agent
// loop implementations; the failure modes at the inference and tool
// boundaries are typed so callers never have to string-match.
package agent

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential indicates a required API key is absent.
	// Fails fast at construction, never mid-turn.
	ErrMissingCredential = errors.New("missing credential")

	// ErrTransport indicates a network-level failure talking to the
	// inference service. Not retried automatically.
	ErrTransport = errors.New("transport failure")

	// ErrTimeout indicates the completion call exceeded its deadline.
	ErrTimeout = errors.New("completion timed out")

	// ErrMalformedResponse indicates the inference service answered with
	// an unexpected shape (no choices, empty message).
	ErrMalformedResponse = errors.New("malformed response")

	// ErrToolNotFound indicates the model requested an unregistered tool.
	// Recoverable: the dispatcher surfaces it to the model as a tool
	// result and the loop continues.
	ErrToolNotFound = errors.New("unknown tool")

	// ErrLoopLimit indicates a turn exceeded the iteration cap while the
	// model kept requesting tools.
	ErrLoopLimit = errors.New("loop limit exceeded")

	// ErrSessionBusy indicates a turn is already running on the session.
	// Only returned by TryRunTurn; RunTurn waits instead.
	ErrSessionBusy = errors.New("session busy")
)

// Error carries the agent and operation that produced a failure.
type Error struct {
	Agent string
	Op    string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Agent, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with agent and operation context.
func NewError(agentName, op string, err error) *Error {
	return &Error{Agent: agentName, Op: op, Err: err}
}
