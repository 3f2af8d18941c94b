package store

// Conversation is a persisted agent session. UID is the engine's session
// id ("<agent>:<pod>:<user>").
type Conversation struct {
	ID        int32
	UID       string
	AgentName string
	CreatedTs int64
	UpdatedTs int64
}

type FindConversation struct {
	ID  *int32
	UID *string
}

type DeleteConversation struct {
	ID int32
}

// MessageRole mirrors the chat protocol roles.
type MessageRole string

const (
	MessageRoleSystem    MessageRole = "system"
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleTool      MessageRole = "tool"
)

// ConversationMessage is one element of a persisted history. ToolCalls is
// a JSON array string; empty when the message carries none.
type ConversationMessage struct {
	ID             int32
	ConversationID int32
	Role           MessageRole
	Content        string
	ToolCalls      string
	ToolCallID     string
	CreatedTs      int64
}

type FindConversationMessage struct {
	ConversationID *int32
}

type DeleteConversationMessage struct {
	ConversationID int32
}
