package profile

import (
	"os"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	clearEnvVars()

	profile := &Profile{}
	profile.FromEnv()

	tests := []struct {
		name     string
		expected string
		actual   string
	}{
		{"GroqBaseURL default", "https://api.groq.com/openai/v1", profile.GroqBaseURL},
		{"SessionBackend default", "memory", profile.SessionBackend},
		{"ToolsEnabled default", "true", boolToString(profile.ToolsEnabled)},
		{"GroqAPIKey empty by default", "", profile.GroqAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, tt.actual)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envVar   string
		envValue string
		field    func(*Profile) string
		expected string
	}{
		{
			name:     "TRAVY_GROQ_API_KEY",
			envVar:   "TRAVY_GROQ_API_KEY",
			envValue: "gsk-test-123",
			field:    func(p *Profile) string { return p.GroqAPIKey },
			expected: "gsk-test-123",
		},
		{
			name:     "bare GROQ_API_KEY fallback",
			envVar:   "GROQ_API_KEY",
			envValue: "gsk-bare",
			field:    func(p *Profile) string { return p.GroqAPIKey },
			expected: "gsk-bare",
		},
		{
			name:     "TRAVY_TAVILY_API_KEY",
			envVar:   "TRAVY_TAVILY_API_KEY",
			envValue: "tvly-test",
			field:    func(p *Profile) string { return p.TavilyAPIKey },
			expected: "tvly-test",
		},
		{
			name:     "bare TAVILY_API_KEY fallback",
			envVar:   "TAVILY_API_KEY",
			envValue: "tvly-bare",
			field:    func(p *Profile) string { return p.TavilyAPIKey },
			expected: "tvly-bare",
		},
		{
			name:     "TRAVY_RAPIDAPI_KEY",
			envVar:   "TRAVY_RAPIDAPI_KEY",
			envValue: "rapid-test",
			field:    func(p *Profile) string { return p.RapidAPIKey },
			expected: "rapid-test",
		},
		{
			name:     "TRAVY_GROQ_BASE_URL override",
			envVar:   "TRAVY_GROQ_BASE_URL",
			envValue: "http://localhost:9999/v1",
			field:    func(p *Profile) string { return p.GroqBaseURL },
			expected: "http://localhost:9999/v1",
		},
		{
			name:     "TRAVY_SESSION_BACKEND",
			envVar:   "TRAVY_SESSION_BACKEND",
			envValue: "store",
			field:    func(p *Profile) string { return p.SessionBackend },
			expected: "store",
		},
		{
			name:     "TRAVY_TOOLS_ENABLED=false",
			envVar:   "TRAVY_TOOLS_ENABLED",
			envValue: "false",
			field:    func(p *Profile) string { return boolToString(p.ToolsEnabled) },
			expected: "false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars()
			os.Setenv(tt.envVar, tt.envValue)
			defer clearEnvVars()

			profile := &Profile{}
			profile.FromEnv()

			actual := tt.field(profile)
			if actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, actual)
			}
		})
	}
}

func TestIsAIEnabled(t *testing.T) {
	tests := []struct {
		name           string
		key            string
		expectedResult bool
	}{
		{"no API key", "", false},
		{"with API key", "gsk-test", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := &Profile{GroqAPIKey: tt.key}
			if result := profile.IsAIEnabled(); result != tt.expectedResult {
				t.Errorf("IsAIEnabled(): expected %v, got %v", tt.expectedResult, result)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("unknown mode falls back to demo", func(t *testing.T) {
		profile := &Profile{Mode: "staging", Data: t.TempDir(), SessionBackend: "memory"}
		if err := profile.Validate(); err != nil {
			t.Fatalf("Validate(): %v", err)
		}
		if profile.Mode != "demo" {
			t.Errorf("expected mode demo, got %q", profile.Mode)
		}
	})

	t.Run("sqlite DSN defaults under data dir", func(t *testing.T) {
		dir := t.TempDir()
		profile := &Profile{Mode: "dev", Driver: "sqlite", Data: dir, SessionBackend: "memory"}
		if err := profile.Validate(); err != nil {
			t.Fatalf("Validate(): %v", err)
		}
		if profile.DSN == "" {
			t.Error("expected DSN to be derived from data dir")
		}
	})

	t.Run("unknown session backend rejected", func(t *testing.T) {
		profile := &Profile{Mode: "dev", Data: t.TempDir(), SessionBackend: "redis"}
		if err := profile.Validate(); err == nil {
			t.Error("expected error for unknown session backend")
		}
	})

	t.Run("chat turn cap and secret default", func(t *testing.T) {
		profile := &Profile{Mode: "dev", Data: t.TempDir(), SessionBackend: "memory"}
		if err := profile.Validate(); err != nil {
			t.Fatalf("Validate(): %v", err)
		}
		if profile.MaxChatTurns != 8 {
			t.Errorf("expected MaxChatTurns 8, got %d", profile.MaxChatTurns)
		}
		if profile.Secret == "" {
			t.Error("expected a development secret to be set")
		}
	})

	t.Run("prod requires a secret", func(t *testing.T) {
		profile := &Profile{Mode: "prod", Data: t.TempDir(), SessionBackend: "memory"}
		if err := profile.Validate(); err == nil {
			t.Error("expected error for missing secret in prod")
		}
	})
}

// Helper functions

func clearEnvVars() {
	envVars := []string{
		"TRAVY_GROQ_API_KEY",
		"GROQ_API_KEY",
		"TRAVY_GROQ_BASE_URL",
		"TRAVY_TAVILY_API_KEY",
		"TAVILY_API_KEY",
		"TRAVY_RAPIDAPI_KEY",
		"RAPIDAPI_KEY",
		"TRAVY_TOOLS_ENABLED",
		"TRAVY_SESSION_BACKEND",
		"TRAVY_MAX_CHAT_TURNS",
		"TRAVY_SECRET",
	}
	for _, envVar := range envVars {
		os.Unsetenv(envVar)
	}
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
