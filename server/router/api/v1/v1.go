// Package v1 implements the REST API surface.
package v1

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/semaphore"

	"github.com/itzayush21/travy/internal/profile"
	"github.com/itzayush21/travy/plugin/ai/agent"
	"github.com/itzayush21/travy/plugin/ai/inference"
	"github.com/itzayush21/travy/plugin/ai/session"
	"github.com/itzayush21/travy/plugin/ai/tools"
	"github.com/itzayush21/travy/plugin/markdown"
	"github.com/itzayush21/travy/store"
)

// APIV1Service wires the HTTP handlers to the store and the agents.
type APIV1Service struct {
	Secret          string
	Profile         *profile.Profile
	Store           *store.Store
	MarkdownService *markdown.Service

	// Client is nil when no inference credential is configured; the chat
	// and generation endpoints then answer 503.
	Client  agent.CompletionClient
	Engines map[string]*agent.Engine

	// chatSemaphore bounds concurrent agent turns per process.
	chatSemaphore *semaphore.Weighted

	logger *slog.Logger
}

// NewAPIV1Service creates the API service. Agents are only constructed
// when the profile carries an inference credential.
func NewAPIV1Service(secret string, profile *profile.Profile, store *store.Store) (*APIV1Service, error) {
	s := &APIV1Service{
		Secret:          secret,
		Profile:         profile,
		Store:           store,
		MarkdownService: markdown.NewService(),
		Engines:         make(map[string]*agent.Engine),
		chatSemaphore:   semaphore.NewWeighted(int64(profile.MaxChatTurns)),
		logger:          slog.Default().With(slog.String("component", "apiv1")),
	}

	if profile.IsAIEnabled() {
		client, err := inference.NewGroqClient(profile.GroqAPIKey, profile.GroqBaseURL)
		if err != nil {
			return nil, err
		}
		s.Client = client

		var sessions agent.SessionStore
		if profile.SessionBackend == "store" {
			sessions = session.NewStoreBacked(store)
		} else {
			sessions = session.NewMemoryStore()
		}

		for _, cfg := range agentConfigs(profile) {
			engine, err := agent.NewEngine(cfg, client, sessions)
			if err != nil {
				return nil, err
			}
			s.Engines[cfg.Name] = engine
		}
	}

	return s, nil
}

// agentConfigs assembles the five agent configurations with the tool sets
// the configured credentials allow.
func agentConfigs(profile *profile.Profile) []agent.Config {
	var search, restaurants, attractions agent.Tool
	if profile.ToolsEnabled {
		if profile.TavilyAPIKey != "" {
			search = tools.NewTavilySearch(profile.TavilyAPIKey)
		}
		if profile.RapidAPIKey != "" {
			restaurants = tools.NewRestaurantSearch(profile.RapidAPIKey)
			attractions = tools.NewAttractionSearch(profile.RapidAPIKey)
		}
	}

	pick := func(candidates ...agent.Tool) []agent.Tool {
		var out []agent.Tool
		for _, tool := range candidates {
			if tool != nil {
				out = append(out, tool)
			}
		}
		return out
	}

	return []agent.Config{
		agent.ItineraryConfig(pick(search, restaurants, attractions)),
		agent.BudgetConfig(pick(search)),
		agent.ResearchConfig(pick(search)),
		agent.LocalConfig(pick(search)),
		agent.PackingConfig(),
	}
}

// Register mounts all v1 routes on the echo instance.
func (s *APIV1Service) Register(e *echo.Echo) {
	g := e.Group("/api/v1")

	g.POST("/auth/signup", s.Signup)
	g.POST("/auth/login", s.Login)

	authed := g.Group("", s.AuthMiddleware)
	authed.GET("/users/me", s.GetCurrentUser)
	authed.GET("/users/me/profile", s.GetUserProfile)
	authed.PATCH("/users/me/profile", s.UpdateUserProfile)

	authed.POST("/pods", s.CreatePod)
	authed.POST("/pods/join", s.JoinPod)
	authed.GET("/pods", s.ListPods)
	authed.GET("/pods/:id", s.GetPod)

	authed.GET("/pods/:id/artifacts", s.ListPodArtifacts)
	authed.POST("/pods/:id/artifacts", s.CreatePodArtifact)
	authed.PATCH("/pods/:id/artifacts/:artifactId", s.UpdatePodArtifact)
	authed.POST("/pods/:id/artifacts/:artifactId/refine", s.RefinePodArtifact)

	authed.POST("/pods/:id/ask", s.Ask)
}
