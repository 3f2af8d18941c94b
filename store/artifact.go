package store

// ArtifactKind distinguishes the three planning documents a pod carries.
type ArtifactKind string

const (
	ArtifactKindItinerary ArtifactKind = "itinerary"
	ArtifactKindPacking   ArtifactKind = "packing"
	ArtifactKindBudget    ArtifactKind = "budget"
)

// PodArtifact is one planning document (itinerary, packing list or budget)
// attached to a pod. Content is markdown, either user-written or generated
// by the matching agent.
type PodArtifact struct {
	ID        int32
	PodID     int32
	Kind      ArtifactKind
	Content   string
	CreatorID int32
	CreatedTs int64
	UpdatedTs int64
}

type FindPodArtifact struct {
	ID    *int32
	PodID *int32
	Kind  *ArtifactKind
}

type UpdatePodArtifact struct {
	ID      int32
	Content *string
}

type DeletePodArtifact struct {
	ID int32
}
