package session

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/itzayush21/travy/plugin/ai/agent"
	"github.com/itzayush21/travy/store"
)

// StoreBacked persists session histories through the relational store so
// conversations survive process restarts.
type StoreBacked struct {
	store *store.Store
}

// NewStoreBacked creates a StoreBacked session store.
func NewStoreBacked(s *store.Store) *StoreBacked {
	return &StoreBacked{store: s}
}

// GetOrCreate returns the conversation for the session id, creating it
// together with the initial messages on first reference.
func (s *StoreBacked) GetOrCreate(ctx context.Context, sessionID string, initial []agent.Message) (*agent.Session, error) {
	conv, err := s.findConversation(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if conv == nil {
		now := time.Now().Unix()
		conv, err = s.store.CreateConversation(ctx, &store.Conversation{
			UID:       sessionID,
			AgentName: agentNameFromSessionID(sessionID),
			CreatedTs: now,
			UpdatedTs: now,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create conversation")
		}
		if err := s.appendTo(ctx, conv.ID, initial); err != nil {
			return nil, err
		}
	}

	history, err := s.history(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	return &agent.Session{
		ID:        sessionID,
		AgentName: conv.AgentName,
		History:   history,
		CreatedAt: conv.CreatedTs,
		UpdatedAt: conv.UpdatedTs,
	}, nil
}

// Append adds messages to the end of the session's history.
func (s *StoreBacked) Append(ctx context.Context, sessionID string, msgs ...agent.Message) error {
	conv, err := s.findConversation(ctx, sessionID)
	if err != nil {
		return err
	}
	if conv == nil {
		now := time.Now().Unix()
		conv, err = s.store.CreateConversation(ctx, &store.Conversation{
			UID:       sessionID,
			AgentName: agentNameFromSessionID(sessionID),
			CreatedTs: now,
			UpdatedTs: now,
		})
		if err != nil {
			return errors.Wrap(err, "failed to create conversation")
		}
	}
	return s.appendTo(ctx, conv.ID, msgs)
}

// History returns the ordered history for the session, or nil when the
// session does not exist.
func (s *StoreBacked) History(ctx context.Context, sessionID string) ([]agent.Message, error) {
	conv, err := s.findConversation(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, nil
	}
	return s.history(ctx, conv.ID)
}

func (s *StoreBacked) findConversation(ctx context.Context, sessionID string) (*store.Conversation, error) {
	convs, err := s.store.ListConversations(ctx, &store.FindConversation{UID: &sessionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find conversation")
	}
	if len(convs) == 0 {
		return nil, nil
	}
	return convs[0], nil
}

func (s *StoreBacked) appendTo(ctx context.Context, conversationID int32, msgs []agent.Message) error {
	now := time.Now().Unix()
	for _, msg := range msgs {
		row := &store.ConversationMessage{
			ConversationID: conversationID,
			Role:           store.MessageRole(msg.Role),
			Content:        msg.Content,
			ToolCallID:     msg.ToolCallID,
			CreatedTs:      now,
		}
		if len(msg.ToolCalls) > 0 {
			raw, err := json.Marshal(msg.ToolCalls)
			if err != nil {
				return errors.Wrap(err, "failed to marshal tool calls")
			}
			row.ToolCalls = string(raw)
		}
		if _, err := s.store.CreateConversationMessage(ctx, row); err != nil {
			return errors.Wrap(err, "failed to append message")
		}
	}
	return nil
}

func (s *StoreBacked) history(ctx context.Context, conversationID int32) ([]agent.Message, error) {
	rows, err := s.store.ListConversationMessages(ctx, &store.FindConversationMessage{ConversationID: &conversationID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list messages")
	}

	msgs := make([]agent.Message, 0, len(rows))
	for _, row := range rows {
		msg := agent.Message{
			Role:       agent.Role(row.Role),
			Content:    row.Content,
			ToolCallID: row.ToolCallID,
		}
		if row.ToolCalls != "" {
			if err := json.Unmarshal([]byte(row.ToolCalls), &msg.ToolCalls); err != nil {
				return nil, errors.Wrap(err, "failed to unmarshal tool calls")
			}
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// agentNameFromSessionID extracts the namespace prefix of a conventional
// "<agent>:<pod>:<user>" session id.
func agentNameFromSessionID(sessionID string) string {
	if i := strings.Index(sessionID, ":"); i > 0 {
		return sessionID[:i]
	}
	return sessionID
}

var _ agent.SessionStore = (*StoreBacked)(nil)
