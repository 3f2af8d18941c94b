package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/itzayush21/travy/plugin/ai/agent"
)

// DefaultTravelGuideURL is the RapidAPI city guide endpoint.
const DefaultTravelGuideURL = "https://travel-guide-api-city-guide-top-places.p.rapidapi.com/check"

const travelGuideHost = "travel-guide-api-city-guide-top-places.p.rapidapi.com"

// TravelGuideOption configures NewAttractionSearch.
type TravelGuideOption func(*travelGuideClient)

// WithTravelGuideURL overrides the endpoint, used by tests.
func WithTravelGuideURL(url string) TravelGuideOption {
	return func(c *travelGuideClient) {
		c.url = url
	}
}

// WithTravelGuideHTTPClient overrides the HTTP client.
func WithTravelGuideHTTPClient(client *http.Client) TravelGuideOption {
	return func(c *travelGuideClient) {
		c.http = client
	}
}

type travelGuideClient struct {
	apiKey string
	url    string
	http   *http.Client
}

type travelGuideRequest struct {
	Region    string   `json:"region"`
	Language  string   `json:"language"`
	Interests []string `json:"interests"`
}

var attractionParameters = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"region": map[string]any{
			"type":        "string",
			"description": "City or region to look up, for example 'Udaipur'.",
		},
		"interests": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Optional interest filters such as 'museums' or 'nature'.",
		},
	},
	"required": []string{"region"},
}

// NewAttractionSearch builds the top places lookup tool. It returns the
// top five attraction names for a region, optionally filtered by interests.
func NewAttractionSearch(apiKey string, opts ...TravelGuideOption) *agent.BaseTool {
	c := &travelGuideClient{
		apiKey: apiKey,
		url:    DefaultTravelGuideURL,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	return agent.NewBaseTool(
		"travel_guide_places",
		"Find top attractions and places to visit in a city or region.",
		c.search,
		agent.WithTimeout(12*time.Second),
		agent.WithParameters(attractionParameters),
	)
}

func (c *travelGuideClient) search(ctx context.Context, arguments string) (string, error) {
	var args struct {
		Region    string   `json:"region"`
		Interests []string `json:"interests"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(args.Region) == "" {
		return "", fmt.Errorf("region is required")
	}

	body, err := json.Marshal(travelGuideRequest{
		Region:    args.Region,
		Language:  "en",
		Interests: args.Interests,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"?noqueue=1", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", travelGuideHost)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("travel guide returned status %d", resp.StatusCode)
	}

	// The guide API answers with a bare JSON array of places.
	var places []struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return "", fmt.Errorf("invalid response body: %w", err)
	}

	var names []string
	for _, place := range places {
		if len(names) == 5 {
			break
		}
		if place.Name != "" {
			names = append(names, place.Name)
		}
	}
	if len(names) == 0 {
		return "No attractions found.", nil
	}
	return "Top places: " + strings.Join(names, ", "), nil
}
