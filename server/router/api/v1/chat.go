package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/itzayush21/travy/plugin/ai/agent"
	"github.com/itzayush21/travy/store"
)

type AskRequest struct {
	Agent   string `json:"agent"`
	Message string `json:"message"`
}

type AskResponse struct {
	Agent     string `json:"agent"`
	Reply     string `json:"reply"`
	ReplyHTML string `json:"replyHtml"`
}

// Ask runs one turn of the named agent for the caller inside the pod.
// The budget and packing agents work from the pod's stored itinerary when
// one exists.
func (s *APIV1Service) Ask(c echo.Context) error {
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

	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}
	if req.Agent == "" {
		req.Agent = agent.AgentItinerary
	}

	engine, ok := s.Engines[req.Agent]
	if !ok {
		if len(s.Engines) == 0 {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "AI is not configured")
		}
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown agent %q", req.Agent))
	}

	if err := s.acquireChatSlot(c); err != nil {
		return err
	}
	defer s.chatSemaphore.Release(1)

	sid := sessionID(req.Agent, pod.ID, user.UID)

	var reply *agent.Message
	if req.Agent == agent.AgentBudget || req.Agent == agent.AgentPacking {
		reply, err = s.askOverItinerary(c, engine, pod, sid, req.Message)
	} else {
		reply, err = engine.RunTurn(ctx, sid, req.Message)
	}
	if err != nil {
		return agentHTTPError(err)
	}

	html, err := s.MarkdownService.Render(reply.Content)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render reply")
	}
	return c.JSON(http.StatusOK, &AskResponse{
		Agent:     req.Agent,
		Reply:     reply.Content,
		ReplyHTML: html,
	})
}

// askOverItinerary folds the pod's itinerary into the turn when one is
// stored, falling back to a plain turn otherwise.
func (s *APIV1Service) askOverItinerary(c echo.Context, engine *agent.Engine, pod *store.Pod, sid, message string) (*agent.Message, error) {
	ctx := c.Request().Context()

	itineraryKind := store.ArtifactKindItinerary
	itineraries, err := s.Store.ListPodArtifacts(ctx, &store.FindPodArtifact{PodID: &pod.ID, Kind: &itineraryKind})
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to load itinerary")
	}
	if len(itineraries) == 0 {
		return engine.RunTurn(ctx, sid, message)
	}
	return engine.RunTurnWithDocument(ctx, sid, itineraries[0].Content, message)
}

// acquireChatSlot takes one slot of the process-wide agent concurrency
// budget, waiting until the request context is cancelled.
func (s *APIV1Service) acquireChatSlot(c echo.Context) error {
	if err := s.chatSemaphore.Acquire(c.Request().Context(), 1); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "too many concurrent agent turns")
	}
	return nil
}

// sessionID builds the conventional "<agent>:<pod>:<user>" session id.
func sessionID(agentName string, podID int32, userUID string) string {
	return fmt.Sprintf("%s:%d:%s", agentName, podID, userUID)
}

// agentHTTPError maps typed agent failures onto HTTP statuses.
func agentHTTPError(err error) error {
	switch {
	case errors.Is(err, agent.ErrTimeout):
		return echo.NewHTTPError(http.StatusGatewayTimeout, "the agent took too long to answer")
	case errors.Is(err, agent.ErrLoopLimit):
		return echo.NewHTTPError(http.StatusBadGateway, "the agent could not finish the request")
	case errors.Is(err, agent.ErrTransport), errors.Is(err, agent.ErrMalformedResponse):
		return echo.NewHTTPError(http.StatusBadGateway, "the agent is unavailable right now")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "agent turn failed")
	}
}
