package store

// PodStatus is the lifecycle state of a trip pod.
type PodStatus string

const (
	PodStatusPlanned   PodStatus = "planned"
	PodStatusActive    PodStatus = "active"
	PodStatusCompleted PodStatus = "completed"
)

// Pod is a shared trip: a destination, a date range and a group of members
// planning together.
type Pod struct {
	ID                 int32
	Name               string
	Description        string
	InviteCode         string
	CreatorID          int32
	Destination        string
	StartDate          string // ISO date
	EndDate            string // ISO date
	Status             PodStatus
	EstimatedBudget    int32
	PreferredTransport string
	Tags               string // comma-separated
	CreatedTs          int64
}

type FindPod struct {
	ID         *int32
	InviteCode *string
	// MemberID filters to pods the user belongs to.
	MemberID *int32
}

type UpdatePod struct {
	ID                 int32
	Name               *string
	Description        *string
	Destination        *string
	StartDate          *string
	EndDate            *string
	Status             *PodStatus
	EstimatedBudget    *int32
	PreferredTransport *string
	Tags               *string
}

type DeletePod struct {
	ID int32
}

// PodRole is a member's role within a pod.
type PodRole string

const (
	PodRoleAdmin  PodRole = "admin"
	PodRoleMember PodRole = "member"
)

// PodMember links a user to a pod.
type PodMember struct {
	ID       int32
	PodID    int32
	UserID   int32
	Role     PodRole
	JoinedTs int64
}

type FindPodMember struct {
	PodID  *int32
	UserID *int32
}

type DeletePodMember struct {
	PodID  int32
	UserID int32
}
