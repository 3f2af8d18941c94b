package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where travy stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string
	// Secret signs session tokens
	Secret string

	// AI configuration
	GroqAPIKey  string // TRAVY_GROQ_API_KEY
	GroqBaseURL string // TRAVY_GROQ_BASE_URL (default: https://api.groq.com/openai/v1)

	// Tool configuration
	TavilyAPIKey   string // TRAVY_TAVILY_API_KEY
	RapidAPIKey    string // TRAVY_RAPIDAPI_KEY
	ToolsEnabled   bool   // TRAVY_TOOLS_ENABLED (default: true)
	MaxChatTurns   int    // TRAVY_MAX_CHAT_TURNS: concurrent chat turns per process (default: 8)
	SessionBackend string // TRAVY_SESSION_BACKEND: "memory" or "store" (default: memory)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled reports whether the inference client can be constructed.
func (p *Profile) IsAIEnabled() bool {
	return p.GroqAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from TRAVY_* environment variables.
// Credential variables also accept their bare upstream names so a .env
// written for the hosted APIs keeps working.
func (p *Profile) FromEnv() {
	getEnvWithFallback := func(key, fallbackKey string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		return os.Getenv(fallbackKey)
	}

	p.GroqAPIKey = getEnvWithFallback("TRAVY_GROQ_API_KEY", "GROQ_API_KEY")
	p.GroqBaseURL = getEnvOrDefault("TRAVY_GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	p.TavilyAPIKey = getEnvWithFallback("TRAVY_TAVILY_API_KEY", "TAVILY_API_KEY")
	p.RapidAPIKey = getEnvWithFallback("TRAVY_RAPIDAPI_KEY", "RAPIDAPI_KEY")
	p.ToolsEnabled = getEnvOrDefault("TRAVY_TOOLS_ENABLED", "true") == "true"
	p.SessionBackend = getEnvOrDefault("TRAVY_SESSION_BACKEND", "memory")
	if raw := os.Getenv("TRAVY_MAX_CHAT_TURNS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			p.MaxChatTurns = n
		}
	}
	if p.Secret == "" {
		p.Secret = os.Getenv("TRAVY_SECRET")
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Mode == "prod" && p.Data == "" {
		p.Data = "/var/opt/travy"
		if _, err := os.Stat(p.Data); os.IsNotExist(err) {
			if err := os.MkdirAll(p.Data, 0770); err != nil {
				slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
				return err
			}
		}
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", dataDir), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("travy_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	if p.SessionBackend != "memory" && p.SessionBackend != "store" {
		return errors.Errorf("unknown session backend %q", p.SessionBackend)
	}

	if p.MaxChatTurns <= 0 {
		p.MaxChatTurns = 8
	}

	if p.Secret == "" {
		if p.Mode == "prod" {
			return errors.New("TRAVY_SECRET must be set in prod mode")
		}
		p.Secret = "travy"
	}

	return nil
}
