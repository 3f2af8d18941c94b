package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// User model related methods.
	CreateUser(ctx context.Context, create *User) (*User, error)
	ListUsers(ctx context.Context, find *FindUser) ([]*User, error)
	UpdateUser(ctx context.Context, update *UpdateUser) (*User, error)
	DeleteUser(ctx context.Context, delete *DeleteUser) error

	// UserProfile model related methods.
	UpsertUserProfile(ctx context.Context, upsert *UserProfile) (*UserProfile, error)
	GetUserProfile(ctx context.Context, find *FindUserProfile) (*UserProfile, error)

	// Pod model related methods.
	CreatePod(ctx context.Context, create *Pod) (*Pod, error)
	ListPods(ctx context.Context, find *FindPod) ([]*Pod, error)
	UpdatePod(ctx context.Context, update *UpdatePod) (*Pod, error)
	DeletePod(ctx context.Context, delete *DeletePod) error

	// PodMember model related methods.
	CreatePodMember(ctx context.Context, create *PodMember) (*PodMember, error)
	ListPodMembers(ctx context.Context, find *FindPodMember) ([]*PodMember, error)
	DeletePodMember(ctx context.Context, delete *DeletePodMember) error

	// PodArtifact model related methods.
	CreatePodArtifact(ctx context.Context, create *PodArtifact) (*PodArtifact, error)
	ListPodArtifacts(ctx context.Context, find *FindPodArtifact) ([]*PodArtifact, error)
	UpdatePodArtifact(ctx context.Context, update *UpdatePodArtifact) (*PodArtifact, error)
	DeletePodArtifact(ctx context.Context, delete *DeletePodArtifact) error

	// Conversation model related methods.
	CreateConversation(ctx context.Context, create *Conversation) (*Conversation, error)
	ListConversations(ctx context.Context, find *FindConversation) ([]*Conversation, error)
	DeleteConversation(ctx context.Context, delete *DeleteConversation) error

	// ConversationMessage model related methods.
	CreateConversationMessage(ctx context.Context, create *ConversationMessage) (*ConversationMessage, error)
	ListConversationMessages(ctx context.Context, find *FindConversationMessage) ([]*ConversationMessage, error)
	DeleteConversationMessages(ctx context.Context, delete *DeleteConversationMessage) error
}
