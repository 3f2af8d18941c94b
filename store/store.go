package store

import (
	"context"

	"github.com/itzayush21/travy/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) CreateUser(ctx context.Context, create *User) (*User, error) {
	return s.driver.CreateUser(ctx, create)
}

func (s *Store) ListUsers(ctx context.Context, find *FindUser) ([]*User, error) {
	return s.driver.ListUsers(ctx, find)
}

// GetUser returns the single user matching find, or nil when absent.
func (s *Store) GetUser(ctx context.Context, find *FindUser) (*User, error) {
	users, err := s.driver.ListUsers(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return users[0], nil
}

func (s *Store) UpdateUser(ctx context.Context, update *UpdateUser) (*User, error) {
	return s.driver.UpdateUser(ctx, update)
}

func (s *Store) DeleteUser(ctx context.Context, delete *DeleteUser) error {
	return s.driver.DeleteUser(ctx, delete)
}

func (s *Store) UpsertUserProfile(ctx context.Context, upsert *UserProfile) (*UserProfile, error) {
	return s.driver.UpsertUserProfile(ctx, upsert)
}

func (s *Store) GetUserProfile(ctx context.Context, find *FindUserProfile) (*UserProfile, error) {
	return s.driver.GetUserProfile(ctx, find)
}

func (s *Store) CreatePod(ctx context.Context, create *Pod) (*Pod, error) {
	return s.driver.CreatePod(ctx, create)
}

func (s *Store) ListPods(ctx context.Context, find *FindPod) ([]*Pod, error) {
	return s.driver.ListPods(ctx, find)
}

// GetPod returns the single pod matching find, or nil when absent.
func (s *Store) GetPod(ctx context.Context, find *FindPod) (*Pod, error) {
	pods, err := s.driver.ListPods(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(pods) == 0 {
		return nil, nil
	}
	return pods[0], nil
}

func (s *Store) UpdatePod(ctx context.Context, update *UpdatePod) (*Pod, error) {
	return s.driver.UpdatePod(ctx, update)
}

func (s *Store) DeletePod(ctx context.Context, delete *DeletePod) error {
	return s.driver.DeletePod(ctx, delete)
}

func (s *Store) CreatePodMember(ctx context.Context, create *PodMember) (*PodMember, error) {
	return s.driver.CreatePodMember(ctx, create)
}

func (s *Store) ListPodMembers(ctx context.Context, find *FindPodMember) ([]*PodMember, error) {
	return s.driver.ListPodMembers(ctx, find)
}

func (s *Store) DeletePodMember(ctx context.Context, delete *DeletePodMember) error {
	return s.driver.DeletePodMember(ctx, delete)
}

func (s *Store) CreatePodArtifact(ctx context.Context, create *PodArtifact) (*PodArtifact, error) {
	return s.driver.CreatePodArtifact(ctx, create)
}

func (s *Store) ListPodArtifacts(ctx context.Context, find *FindPodArtifact) ([]*PodArtifact, error) {
	return s.driver.ListPodArtifacts(ctx, find)
}

func (s *Store) UpdatePodArtifact(ctx context.Context, update *UpdatePodArtifact) (*PodArtifact, error) {
	return s.driver.UpdatePodArtifact(ctx, update)
}

func (s *Store) DeletePodArtifact(ctx context.Context, delete *DeletePodArtifact) error {
	return s.driver.DeletePodArtifact(ctx, delete)
}

func (s *Store) CreateConversation(ctx context.Context, create *Conversation) (*Conversation, error) {
	return s.driver.CreateConversation(ctx, create)
}

func (s *Store) ListConversations(ctx context.Context, find *FindConversation) ([]*Conversation, error) {
	return s.driver.ListConversations(ctx, find)
}

func (s *Store) DeleteConversation(ctx context.Context, delete *DeleteConversation) error {
	return s.driver.DeleteConversation(ctx, delete)
}

func (s *Store) CreateConversationMessage(ctx context.Context, create *ConversationMessage) (*ConversationMessage, error) {
	return s.driver.CreateConversationMessage(ctx, create)
}

func (s *Store) ListConversationMessages(ctx context.Context, find *FindConversationMessage) ([]*ConversationMessage, error) {
	return s.driver.ListConversationMessages(ctx, find)
}

func (s *Store) DeleteConversationMessages(ctx context.Context, delete *DeleteConversationMessage) error {
	return s.driver.DeleteConversationMessages(ctx, delete)
}
