package agent

// TurnState is the position of a turn inside the loop.
type TurnState int

const (
	// StateAwaitingModel means the next step is a completion call.
	StateAwaitingModel TurnState = iota
	// StateAwaitingTools means the latest assistant message requested
	// tools that have not been executed yet.
	StateAwaitingTools
	// StateDone terminates the turn.
	StateDone
)

func (s TurnState) String() string {
	switch s {
	case StateAwaitingModel:
		return "AWAITING_MODEL"
	case StateAwaitingTools:
		return "AWAITING_TOOLS"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// Route decides the next state from the latest assistant message. It is a
// pure function: non-empty tool calls always route to tools, anything else
// finishes the turn.
func Route(last *Message) TurnState {
	if last == nil {
		return StateDone
	}
	if last.Role == RoleAssistant && len(last.ToolCalls) > 0 {
		return StateAwaitingTools
	}
	return StateDone
}
