package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/itzayush21/travy/internal/profile"
	"github.com/itzayush21/travy/plugin/ai/agent"
	"github.com/itzayush21/travy/plugin/ai/inference"
	"github.com/itzayush21/travy/plugin/ai/session"
	"github.com/itzayush21/travy/store"
	"github.com/itzayush21/travy/store/db/sqlite"
)

func newTestService(t *testing.T) (*APIV1Service, *echo.Echo) {
	t.Helper()
	p := &profile.Profile{
		Mode:           "dev",
		Driver:         "sqlite",
		DSN:            filepath.Join(t.TempDir(), "travy_test.db"),
		Secret:         "test-secret",
		MaxChatTurns:   2,
		SessionBackend: "memory",
	}
	driver, err := sqlite.NewDB(p)
	require.NoError(t, err)
	t.Cleanup(func() { driver.Close() })

	svc, err := NewAPIV1Service(p.Secret, p, store.New(driver, p))
	require.NoError(t, err)

	e := echo.New()
	svc.Register(e)
	return svc, e
}

func TestAgentConfigsToolWiring(t *testing.T) {
	p := &profile.Profile{
		ToolsEnabled: true,
		TavilyAPIKey: "tvly-test",
		RapidAPIKey:  "rapid-test",
	}

	names := func(cfg agent.Config) []string {
		out := make([]string, 0, len(cfg.Tools))
		for _, tool := range cfg.Tools {
			out = append(out, tool.Name())
		}
		return out
	}

	byName := map[string]agent.Config{}
	for _, cfg := range agentConfigs(p) {
		byName[cfg.Name] = cfg
	}

	require.ElementsMatch(t,
		[]string{"tavily_search", "tripadvisor_restaurants", "travel_guide_places"},
		names(byName["itinerary"]))
	require.ElementsMatch(t, []string{"tavily_search"}, names(byName["budget"]))
	require.ElementsMatch(t, []string{"tavily_search"}, names(byName["research"]))
	require.ElementsMatch(t, []string{"tavily_search"}, names(byName["local"]))
	require.Empty(t, names(byName["packing"]))

	// Every tool a system prompt tells the model to use must resolve in
	// that agent's registry, or the model gets unknown-tool errors back.
	mention := regexp.MustCompile("`([a-z_]+)`")
	for agentName, cfg := range byName {
		registered := map[string]bool{}
		for _, n := range names(cfg) {
			registered[n] = true
		}
		for _, m := range mention.FindAllStringSubmatch(cfg.SystemPrompt, -1) {
			require.True(t, registered[m[1]],
				"%s prompt mentions unregistered tool %q", agentName, m[1])
		}
	}
}

// installEngine wires a scripted completion client into the service.
func installEngine(t *testing.T, svc *APIV1Service, cfg agent.Config, client agent.CompletionClient) {
	t.Helper()
	engine, err := agent.NewEngine(cfg, client, session.NewMemoryStore())
	require.NoError(t, err)
	svc.Client = client
	svc.Engines[cfg.Name] = engine
}

func perform(e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func signup(t *testing.T, e *echo.Echo, email string) (string, *UserResponse) {
	t.Helper()
	rec := perform(e, http.MethodPost, "/api/v1/auth/signup", "", SignupRequest{
		Email:    email,
		Password: "supersecret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[AuthResponse](t, rec)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken, resp.User
}

func createPod(t *testing.T, e *echo.Echo, token, name string) *PodResponse {
	t.Helper()
	rec := perform(e, http.MethodPost, "/api/v1/pods", token, CreatePodRequest{
		Name:            name,
		Destination:     "Jaipur",
		StartDate:       "2026-10-01",
		EndDate:         "2026-10-04",
		EstimatedBudget: 15000,
		Tags:            []string{"forts", "food"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	pod := decode[*PodResponse](t, rec)
	require.NotEmpty(t, pod.InviteCode)
	return pod
}

func TestSignupAndLogin(t *testing.T) {
	_, e := newTestService(t)

	token, user := signup(t, e, "asha@example.com")
	require.Equal(t, "asha@example.com", user.Email)
	require.Equal(t, "asha", user.Nickname)
	require.NotEmpty(t, token)

	// Duplicate email is rejected.
	rec := perform(e, http.MethodPost, "/api/v1/auth/signup", "", SignupRequest{
		Email: "asha@example.com", Password: "supersecret",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	// Login with the right password.
	rec = perform(e, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
		Email: "asha@example.com", Password: "supersecret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Wrong password.
	rec = perform(e, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
		Email: "asha@example.com", Password: "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignupValidation(t *testing.T) {
	_, e := newTestService(t)

	rec := perform(e, http.MethodPost, "/api/v1/auth/signup", "", SignupRequest{
		Email: "not-an-email", Password: "supersecret",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = perform(e, http.MethodPost, "/api/v1/auth/signup", "", SignupRequest{
		Email: "ok@example.com", Password: "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	_, e := newTestService(t)

	rec := perform(e, http.MethodGet, "/api/v1/users/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = perform(e, http.MethodGet, "/api/v1/users/me", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	token, user := signup(t, e, "asha@example.com")
	rec = perform(e, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[*UserResponse](t, rec)
	require.Equal(t, user.UID, me.UID)
}

func TestUserProfileUpsert(t *testing.T) {
	_, e := newTestService(t)
	token, _ := signup(t, e, "asha@example.com")

	// Unset profile reads back empty.
	rec := perform(e, http.MethodGet, "/api/v1/users/me/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[*UserProfileResponse](t, rec).BloodGroup)

	bg, allergies := "O+", "peanuts"
	rec = perform(e, http.MethodPatch, "/api/v1/users/me/profile", token, UpdateUserProfileRequest{
		BloodGroup: &bg,
		Allergies:  &allergies,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// A second partial update keeps earlier fields.
	lang := "hi"
	rec = perform(e, http.MethodPatch, "/api/v1/users/me/profile", token, UpdateUserProfileRequest{
		PreferredLanguage: &lang,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[*UserProfileResponse](t, rec)
	require.Equal(t, "O+", got.BloodGroup)
	require.Equal(t, "peanuts", got.Allergies)
	require.Equal(t, "hi", got.PreferredLanguage)
}

func TestPodLifecycle(t *testing.T) {
	_, e := newTestService(t)
	adminToken, _ := signup(t, e, "admin@example.com")
	memberToken, _ := signup(t, e, "member@example.com")

	pod := createPod(t, e, adminToken, "Rajasthan trip")

	// A non-member cannot read the pod.
	rec := perform(e, http.MethodGet, fmt.Sprintf("/api/v1/pods/%d", pod.ID), memberToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Join by invite code.
	rec = perform(e, http.MethodPost, "/api/v1/pods/join", memberToken, JoinPodRequest{InviteCode: pod.InviteCode})
	require.Equal(t, http.StatusOK, rec.Code)

	// Joining twice conflicts.
	rec = perform(e, http.MethodPost, "/api/v1/pods/join", memberToken, JoinPodRequest{InviteCode: pod.InviteCode})
	require.Equal(t, http.StatusConflict, rec.Code)

	// A bad code is not found.
	rec = perform(e, http.MethodPost, "/api/v1/pods/join", memberToken, JoinPodRequest{InviteCode: "nope"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Now the member sees the pod.
	rec = perform(e, http.MethodGet, fmt.Sprintf("/api/v1/pods/%d", pod.ID), memberToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[*PodResponse](t, rec)
	require.Equal(t, "Rajasthan trip", got.Name)
	require.Equal(t, []string{"forts", "food"}, got.Tags)

	rec = perform(e, http.MethodGet, "/api/v1/pods", memberToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]*PodResponse](t, rec), 1)
}

func TestArtifactManualLifecycle(t *testing.T) {
	_, e := newTestService(t)
	token, _ := signup(t, e, "asha@example.com")
	pod := createPod(t, e, token, "Goa trip")

	base := fmt.Sprintf("/api/v1/pods/%d/artifacts", pod.ID)

	rec := perform(e, http.MethodPost, base, token, CreatePodArtifactRequest{
		Kind:    "itinerary",
		Content: "Day 1: beaches",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	artifact := decode[*PodArtifactResponse](t, rec)
	require.Equal(t, "itinerary", artifact.Kind)

	rec = perform(e, http.MethodPost, base, token, CreatePodArtifactRequest{Kind: "diary", Content: "x"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = perform(e, http.MethodPatch, fmt.Sprintf("%s/%d", base, artifact.ID), token, UpdatePodArtifactRequest{
		Content: "Day 1: beaches\nDay 2: forts",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, decode[*PodArtifactResponse](t, rec).Content, "Day 2")

	rec = perform(e, http.MethodGet, base+"?kind=itinerary", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]*PodArtifactResponse](t, rec), 1)
}

func TestArtifactGenerationRequiresAI(t *testing.T) {
	_, e := newTestService(t)
	token, _ := signup(t, e, "asha@example.com")
	pod := createPod(t, e, token, "Goa trip")

	rec := perform(e, http.MethodPost, fmt.Sprintf("/api/v1/pods/%d/artifacts", pod.ID), token,
		CreatePodArtifactRequest{Kind: "itinerary"})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAskRunsAgentAndRendersReply(t *testing.T) {
	svc, e := newTestService(t)
	token, _ := signup(t, e, "asha@example.com")
	pod := createPod(t, e, token, "Goa trip")

	client := inference.NewMockClient(agent.AssistantMessage("## Day 1\nArrive and relax."))
	installEngine(t, svc, agent.ItineraryConfig(nil), client)

	rec := perform(e, http.MethodPost, fmt.Sprintf("/api/v1/pods/%d/ask", pod.ID), token,
		AskRequest{Agent: "itinerary", Message: "Plan my trip"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[*AskResponse](t, rec)
	require.Equal(t, "itinerary", resp.Agent)
	require.Contains(t, resp.Reply, "## Day 1")
	require.Contains(t, resp.ReplyHTML, "<h2>Day 1</h2>")

	// The system prompt and the user message reached the model.
	require.Equal(t, 1, client.Calls)
	require.Equal(t, agent.RoleSystem, client.LastMessages[0].Role)
	require.Equal(t, "Plan my trip", client.LastMessages[1].Content)
}

func TestAskUnknownAgent(t *testing.T) {
	svc, e := newTestService(t)
	token, _ := signup(t, e, "asha@example.com")
	pod := createPod(t, e, token, "Goa trip")

	installEngine(t, svc, agent.ItineraryConfig(nil), inference.NewMockClient())

	rec := perform(e, http.MethodPost, fmt.Sprintf("/api/v1/pods/%d/ask", pod.ID), token,
		AskRequest{Agent: "astrology", Message: "hi"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAskWithoutAIConfigured(t *testing.T) {
	_, e := newTestService(t)
	token, _ := signup(t, e, "asha@example.com")
	pod := createPod(t, e, token, "Goa trip")

	rec := perform(e, http.MethodPost, fmt.Sprintf("/api/v1/pods/%d/ask", pod.ID), token,
		AskRequest{Agent: "itinerary", Message: "hi"})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAskAgentFailureMapsToGateway(t *testing.T) {
	svc, e := newTestService(t)
	token, _ := signup(t, e, "asha@example.com")
	pod := createPod(t, e, token, "Goa trip")

	client := &inference.MockClient{Errs: []error{agent.ErrTimeout}}
	installEngine(t, svc, agent.ItineraryConfig(nil), client)

	rec := perform(e, http.MethodPost, fmt.Sprintf("/api/v1/pods/%d/ask", pod.ID), token,
		AskRequest{Agent: "itinerary", Message: "hi"})
	require.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestAskBudgetUsesStoredItinerary(t *testing.T) {
	svc, e := newTestService(t)
	token, _ := signup(t, e, "asha@example.com")
	pod := createPod(t, e, token, "Goa trip")

	rec := perform(e, http.MethodPost, fmt.Sprintf("/api/v1/pods/%d/artifacts", pod.ID), token,
		CreatePodArtifactRequest{Kind: "itinerary", Content: "Day 1: beaches. Day 2: forts."})
	require.Equal(t, http.StatusCreated, rec.Code)

	// First completion condenses the itinerary, the second answers.
	client := inference.NewMockClient(
		agent.AssistantMessage("Day 1: beaches. Day 2: forts."),
		agent.AssistantMessage("Total: 9000 INR."),
	)
	installEngine(t, svc, agent.BudgetConfig(nil), client)

	rec = perform(e, http.MethodPost, fmt.Sprintf("/api/v1/pods/%d/ask", pod.ID), token,
		AskRequest{Agent: "budget", Message: "How much will it cost?"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 2, client.Calls)
	require.Contains(t, decode[*AskResponse](t, rec).Reply, "9000 INR")
}

func TestRefineItineraryArtifact(t *testing.T) {
	svc, e := newTestService(t)
	token, _ := signup(t, e, "asha@example.com")
	pod := createPod(t, e, token, "Goa trip")

	base := fmt.Sprintf("/api/v1/pods/%d/artifacts", pod.ID)
	rec := perform(e, http.MethodPost, base, token, CreatePodArtifactRequest{
		Kind:    "itinerary",
		Content: "Day 1: beaches\nDay 2: forts",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	artifact := decode[*PodArtifactResponse](t, rec)

	client := inference.NewMockClient(agent.AssistantMessage("Day 2: spice farm instead of forts"))
	installEngine(t, svc, agent.ItineraryConfig(nil), client)

	rec = perform(e, http.MethodPost, fmt.Sprintf("%s/%d/refine", base, artifact.ID), token,
		RefinePodArtifactRequest{Instruction: "Day 1 is done, swap forts for a spice farm"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decode[*PodArtifactResponse](t, rec)
	require.Contains(t, updated.Content, "Day 1: beaches")
	require.Contains(t, updated.Content, "spice farm")
}
