package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/itzayush21/travy/store"
)

type CreatePodRequest struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Destination        string   `json:"destination"`
	StartDate          string   `json:"startDate"`
	EndDate            string   `json:"endDate"`
	EstimatedBudget    int32    `json:"estimatedBudget"`
	PreferredTransport string   `json:"preferredTransport"`
	Tags               []string `json:"tags"`
}

type JoinPodRequest struct {
	InviteCode string `json:"inviteCode"`
}

type PodResponse struct {
	ID                 int32    `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	InviteCode         string   `json:"inviteCode"`
	Destination        string   `json:"destination"`
	StartDate          string   `json:"startDate"`
	EndDate            string   `json:"endDate"`
	Status             string   `json:"status"`
	EstimatedBudget    int32    `json:"estimatedBudget"`
	PreferredTransport string   `json:"preferredTransport"`
	Tags               []string `json:"tags"`
	CreatedTs          int64    `json:"createdTs"`
}

func toPodResponse(pod *store.Pod) *PodResponse {
	var tags []string
	if pod.Tags != "" {
		tags = strings.Split(pod.Tags, ",")
	}
	return &PodResponse{
		ID:                 pod.ID,
		Name:               pod.Name,
		Description:        pod.Description,
		InviteCode:         pod.InviteCode,
		Destination:        pod.Destination,
		StartDate:          pod.StartDate,
		EndDate:            pod.EndDate,
		Status:             string(pod.Status),
		EstimatedBudget:    pod.EstimatedBudget,
		PreferredTransport: pod.PreferredTransport,
		Tags:               tags,
		CreatedTs:          pod.CreatedTs,
	}
}

// CreatePod creates a trip pod with the caller as admin member.
func (s *APIV1Service) CreatePod(c echo.Context) error {
	ctx := c.Request().Context()
	user := userFromContext(c)

	var req CreatePodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if strings.TrimSpace(req.Destination) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "destination is required")
	}

	now := time.Now().Unix()
	pod, err := s.Store.CreatePod(ctx, &store.Pod{
		Name:               req.Name,
		Description:        req.Description,
		InviteCode:         shortuuid.New(),
		CreatorID:          user.ID,
		Destination:        req.Destination,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Status:             store.PodStatusPlanned,
		EstimatedBudget:    req.EstimatedBudget,
		PreferredTransport: req.PreferredTransport,
		Tags:               strings.Join(req.Tags, ","),
		CreatedTs:          now,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create pod")
	}

	if _, err := s.Store.CreatePodMember(ctx, &store.PodMember{
		PodID:    pod.ID,
		UserID:   user.ID,
		Role:     store.PodRoleAdmin,
		JoinedTs: now,
	}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add creator to pod")
	}

	return c.JSON(http.StatusCreated, toPodResponse(pod))
}

// JoinPod adds the caller to the pod matching the invite code.
func (s *APIV1Service) JoinPod(c echo.Context) error {
	ctx := c.Request().Context()
	user := userFromContext(c)

	var req JoinPodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	code := strings.TrimSpace(req.InviteCode)
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invite code is required")
	}

	pod, err := s.Store.GetPod(ctx, &store.FindPod{InviteCode: &code})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to look up invite code")
	}
	if pod == nil {
		return echo.NewHTTPError(http.StatusNotFound, "invalid invite code")
	}

	members, err := s.Store.ListPodMembers(ctx, &store.FindPodMember{PodID: &pod.ID, UserID: &user.ID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to check membership")
	}
	if len(members) > 0 {
		return echo.NewHTTPError(http.StatusConflict, "already a member of this pod")
	}

	if _, err := s.Store.CreatePodMember(ctx, &store.PodMember{
		PodID:    pod.ID,
		UserID:   user.ID,
		Role:     store.PodRoleMember,
		JoinedTs: time.Now().Unix(),
	}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to join pod")
	}

	return c.JSON(http.StatusOK, toPodResponse(pod))
}

// ListPods returns the pods the caller belongs to.
func (s *APIV1Service) ListPods(c echo.Context) error {
	ctx := c.Request().Context()
	user := userFromContext(c)

	pods, err := s.Store.ListPods(ctx, &store.FindPod{MemberID: &user.ID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list pods")
	}

	out := make([]*PodResponse, 0, len(pods))
	for _, pod := range pods {
		out = append(out, toPodResponse(pod))
	}
	return c.JSON(http.StatusOK, out)
}

// GetPod returns one pod the caller belongs to.
func (s *APIV1Service) GetPod(c echo.Context) error {
	user := userFromContext(c)
	podID, err := podIDParam(c)
	if err != nil {
		return err
	}

	pod, err := s.requirePodMember(c, podID, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPodResponse(pod))
}
