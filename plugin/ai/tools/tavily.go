package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/itzayush21/travy/plugin/ai/agent"
)

// DefaultTavilyURL is the Tavily search endpoint.
const DefaultTavilyURL = "https://api.tavily.com/search"

// resultClip bounds how much text one search result may contribute.
const resultClip = 300

// TavilyOption configures NewTavilySearch.
type TavilyOption func(*tavilyClient)

// WithTavilyURL overrides the endpoint, used by tests.
func WithTavilyURL(url string) TavilyOption {
	return func(c *tavilyClient) {
		c.url = url
	}
}

// WithTavilyHTTPClient overrides the HTTP client.
func WithTavilyHTTPClient(client *http.Client) TavilyOption {
	return func(c *tavilyClient) {
		c.http = client
	}
}

type tavilyClient struct {
	apiKey string
	url    string
	http   *http.Client
}

type tavilyRequest struct {
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	IncludeAnswer bool   `json:"include_answer"`
}

type tavilyResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		Content string `json:"content"`
	} `json:"results"`
}

// NewTavilySearch builds the live web search tool. The answer field is
// preferred; otherwise the first two results are stripped of markup and
// clipped.
func NewTavilySearch(apiKey string, opts ...TavilyOption) *agent.BaseTool {
	c := &tavilyClient{
		apiKey: apiKey,
		url:    DefaultTavilyURL,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	return agent.NewBaseTool(
		"tavily_search",
		"Search the web for live travel information: prices, attractions, rules, weather.",
		c.search,
		agent.WithTimeout(12*time.Second),
	)
}

func (c *tavilyClient) search(ctx context.Context, arguments string) (string, error) {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(args.Query) == "" {
		return "", fmt.Errorf("query is required")
	}

	body, err := json.Marshal(tavilyRequest{
		Query:         args.Query,
		SearchDepth:   "advanced",
		IncludeAnswer: true,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tavily returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var data tavilyResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", fmt.Errorf("invalid response body: %w", err)
	}

	if data.Answer != "" {
		return data.Answer, nil
	}

	var texts []string
	for _, result := range data.Results {
		if len(texts) == 2 {
			break
		}
		text := clip(stripHTML(result.Content), resultClip)
		if text != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) == 0 {
		return "No relevant info found.", nil
	}
	return strings.Join(texts, "\n\n"), nil
}
