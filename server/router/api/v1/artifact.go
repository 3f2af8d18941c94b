package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/itzayush21/travy/plugin/ai/agent"
	"github.com/itzayush21/travy/store"
)

type CreatePodArtifactRequest struct {
	Kind string `json:"kind"`
	// Content, when set, stores a user-written document. When empty the
	// matching agent generates one from the pod details.
	Content string `json:"content"`
	// Prompt carries extra instructions for AI generation.
	Prompt string `json:"prompt"`
}

type UpdatePodArtifactRequest struct {
	Content string `json:"content"`
}

type RefinePodArtifactRequest struct {
	Instruction string `json:"instruction"`
}

type PodArtifactResponse struct {
	ID        int32  `json:"id"`
	PodID     int32  `json:"podId"`
	Kind      string `json:"kind"`
	Content   string `json:"content"`
	CreatedTs int64  `json:"createdTs"`
	UpdatedTs int64  `json:"updatedTs"`
}

func toPodArtifactResponse(a *store.PodArtifact) *PodArtifactResponse {
	return &PodArtifactResponse{
		ID:        a.ID,
		PodID:     a.PodID,
		Kind:      string(a.Kind),
		Content:   a.Content,
		CreatedTs: a.CreatedTs,
		UpdatedTs: a.UpdatedTs,
	}
}

func artifactKind(raw string) (store.ArtifactKind, error) {
	switch store.ArtifactKind(raw) {
	case store.ArtifactKindItinerary, store.ArtifactKindPacking, store.ArtifactKindBudget:
		return store.ArtifactKind(raw), nil
	default:
		return "", echo.NewHTTPError(http.StatusBadRequest, "kind must be itinerary, packing or budget")
	}
}

func artifactIDParam(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("artifactId"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid artifact id")
	}
	return int32(id), nil
}

// ListPodArtifacts returns the pod's planning documents, optionally
// filtered by kind.
func (s *APIV1Service) ListPodArtifacts(c echo.Context) error {
	ctx := c.Request().Context()
	user := userFromContext(c)
	podID, err := podIDParam(c)
	if err != nil {
		return err
	}
	if _, err := s.requirePodMember(c, podID, user.ID); err != nil {
		return err
	}

	find := &store.FindPodArtifact{PodID: &podID}
	if raw := c.QueryParam("kind"); raw != "" {
		kind, err := artifactKind(raw)
		if err != nil {
			return err
		}
		find.Kind = &kind
	}

	artifacts, err := s.Store.ListPodArtifacts(ctx, find)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list artifacts")
	}

	out := make([]*PodArtifactResponse, 0, len(artifacts))
	for _, a := range artifacts {
		out = append(out, toPodArtifactResponse(a))
	}
	return c.JSON(http.StatusOK, out)
}

// CreatePodArtifact stores a planning document. With empty content the
// matching agent writes it: the itinerary agent plans from the pod
// details, the budget and packing agents work from the stored itinerary.
func (s *APIV1Service) CreatePodArtifact(c echo.Context) error {
	ctx := c.Request().Context()
	user := userFromContext(c)
	podID, err := podIDParam(c)
	if err != nil {
		return err
	}
	pod, err := s.requirePodMember(c, podID, user.ID)
	if err != nil {
		return err
	}

	var req CreatePodArtifactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	kind, err := artifactKind(req.Kind)
	if err != nil {
		return err
	}

	content := req.Content
	if strings.TrimSpace(content) == "" {
		content, err = s.generateArtifact(c, pod, user, kind, req.Prompt)
		if err != nil {
			return err
		}
	}

	now := time.Now().Unix()
	artifact, err := s.Store.CreatePodArtifact(ctx, &store.PodArtifact{
		PodID:     pod.ID,
		Kind:      kind,
		Content:   content,
		CreatorID: user.ID,
		CreatedTs: now,
		UpdatedTs: now,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save artifact")
	}
	return c.JSON(http.StatusCreated, toPodArtifactResponse(artifact))
}

// UpdatePodArtifact replaces a document's content with a manual edit.
func (s *APIV1Service) UpdatePodArtifact(c echo.Context) error {
	ctx := c.Request().Context()
	user := userFromContext(c)
	podID, err := podIDParam(c)
	if err != nil {
		return err
	}
	if _, err := s.requirePodMember(c, podID, user.ID); err != nil {
		return err
	}
	artifactID, err := artifactIDParam(c)
	if err != nil {
		return err
	}

	var req UpdatePodArtifactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if strings.TrimSpace(req.Content) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "content is required")
	}

	if _, err := s.findPodArtifact(c, podID, artifactID); err != nil {
		return err
	}

	artifact, err := s.Store.UpdatePodArtifact(ctx, &store.UpdatePodArtifact{
		ID:      artifactID,
		Content: &req.Content,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update artifact")
	}
	return c.JSON(http.StatusOK, toPodArtifactResponse(artifact))
}

// RefinePodArtifact rewrites a document with the agent according to a
// user instruction. Itineraries are refined in place; budget and packing
// documents are regenerated from the current itinerary.
func (s *APIV1Service) RefinePodArtifact(c echo.Context) error {
	ctx := c.Request().Context()
	user := userFromContext(c)
	podID, err := podIDParam(c)
	if err != nil {
		return err
	}
	pod, err := s.requirePodMember(c, podID, user.ID)
	if err != nil {
		return err
	}
	artifactID, err := artifactIDParam(c)
	if err != nil {
		return err
	}

	var req RefinePodArtifactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if strings.TrimSpace(req.Instruction) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "instruction is required")
	}
	if s.Client == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "AI is not configured")
	}

	artifact, err := s.findPodArtifact(c, podID, artifactID)
	if err != nil {
		return err
	}

	if err := s.acquireChatSlot(c); err != nil {
		return err
	}
	defer s.chatSemaphore.Release(1)

	var content string
	switch artifact.Kind {
	case store.ArtifactKindItinerary:
		refined, err := agent.RefineItinerary(ctx, s.Client, agent.ModelGemma, artifact.Content, req.Instruction)
		if err != nil {
			return agentHTTPError(err)
		}
		content = strings.TrimSpace(artifact.Content) + "\n\n" + refined
	default:
		reply, err := s.runOverItinerary(c, pod, user, artifact.Kind, req.Instruction)
		if err != nil {
			return err
		}
		content = reply
	}

	updated, err := s.Store.UpdatePodArtifact(ctx, &store.UpdatePodArtifact{
		ID:      artifact.ID,
		Content: &content,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update artifact")
	}
	return c.JSON(http.StatusOK, toPodArtifactResponse(updated))
}

func (s *APIV1Service) findPodArtifact(c echo.Context, podID, artifactID int32) (*store.PodArtifact, error) {
	artifacts, err := s.Store.ListPodArtifacts(c.Request().Context(), &store.FindPodArtifact{ID: &artifactID, PodID: &podID})
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to load artifact")
	}
	if len(artifacts) == 0 {
		return nil, echo.NewHTTPError(http.StatusNotFound, "artifact not found")
	}
	return artifacts[0], nil
}

// generateArtifact asks the matching agent to write the document.
func (s *APIV1Service) generateArtifact(c echo.Context, pod *store.Pod, user *store.User, kind store.ArtifactKind, prompt string) (string, error) {
	if s.Client == nil {
		return "", echo.NewHTTPError(http.StatusServiceUnavailable, "AI is not configured")
	}
	if err := s.acquireChatSlot(c); err != nil {
		return "", err
	}
	defer s.chatSemaphore.Release(1)

	if kind == store.ArtifactKindItinerary {
		engine, ok := s.Engines[agent.AgentItinerary]
		if !ok {
			return "", echo.NewHTTPError(http.StatusServiceUnavailable, "AI is not configured")
		}
		reply, err := engine.RunTurn(c.Request().Context(), sessionID(agent.AgentItinerary, pod.ID, user.UID), itineraryRequest(pod, prompt))
		if err != nil {
			return "", agentHTTPError(err)
		}
		return reply.Content, nil
	}
	return s.runOverItinerary(c, pod, user, kind, prompt)
}

// runOverItinerary runs the budget or packing agent over the pod's stored
// itinerary through the summarize pipeline.
func (s *APIV1Service) runOverItinerary(c echo.Context, pod *store.Pod, user *store.User, kind store.ArtifactKind, userText string) (string, error) {
	ctx := c.Request().Context()

	agentName := agent.AgentBudget
	if kind == store.ArtifactKindPacking {
		agentName = agent.AgentPacking
	}
	engine, ok := s.Engines[agentName]
	if !ok {
		return "", echo.NewHTTPError(http.StatusServiceUnavailable, "AI is not configured")
	}

	itineraryKind := store.ArtifactKindItinerary
	itineraries, err := s.Store.ListPodArtifacts(ctx, &store.FindPodArtifact{PodID: &pod.ID, Kind: &itineraryKind})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusInternalServerError, "failed to load itinerary")
	}
	if len(itineraries) == 0 {
		return "", echo.NewHTTPError(http.StatusConflict, "pod has no itinerary to work from")
	}

	reply, err := engine.RunTurnWithDocument(ctx, sessionID(agentName, pod.ID, user.UID), itineraries[0].Content, userText)
	if err != nil {
		return "", agentHTTPError(err)
	}
	return reply.Content, nil
}

// itineraryRequest builds the generation request from the pod details.
func itineraryRequest(pod *store.Pod, prompt string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan a trip to %s", pod.Destination)
	if pod.StartDate != "" && pod.EndDate != "" {
		fmt.Fprintf(&b, " from %s to %s", pod.StartDate, pod.EndDate)
	}
	if pod.EstimatedBudget > 0 {
		fmt.Fprintf(&b, " with a budget of %d INR", pod.EstimatedBudget)
	}
	if pod.PreferredTransport != "" {
		fmt.Fprintf(&b, ", travelling by %s", pod.PreferredTransport)
	}
	if pod.Tags != "" {
		fmt.Fprintf(&b, ". Interests: %s", pod.Tags)
	}
	b.WriteString(".")
	if strings.TrimSpace(prompt) != "" {
		b.WriteString("\n")
		b.WriteString(prompt)
	}
	return b.String()
}
