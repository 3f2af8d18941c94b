package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/itzayush21/travy/plugin/ai/agent"
)

// DefaultTripAdvisorURL is the RapidAPI restaurant search endpoint.
const DefaultTripAdvisorURL = "https://tripadvisor-scraper.p.rapidapi.com/restaurants/search"

const tripAdvisorHost = "tripadvisor-scraper.p.rapidapi.com"

// TripAdvisorOption configures NewRestaurantSearch.
type TripAdvisorOption func(*tripAdvisorClient)

// WithTripAdvisorURL overrides the endpoint, used by tests.
func WithTripAdvisorURL(url string) TripAdvisorOption {
	return func(c *tripAdvisorClient) {
		c.url = url
	}
}

// WithTripAdvisorHTTPClient overrides the HTTP client.
func WithTripAdvisorHTTPClient(client *http.Client) TripAdvisorOption {
	return func(c *tripAdvisorClient) {
		c.http = client
	}
}

type tripAdvisorClient struct {
	apiKey string
	url    string
	http   *http.Client
}

// The scraper returns the restaurant list under "data".
type tripAdvisorResponse struct {
	Data []struct {
		Name string `json:"name"`
	} `json:"data"`
}

// NewRestaurantSearch builds the restaurant lookup tool. It returns the
// top five restaurant names for a city or area.
func NewRestaurantSearch(apiKey string, opts ...TripAdvisorOption) *agent.BaseTool {
	c := &tripAdvisorClient{
		apiKey: apiKey,
		url:    DefaultTripAdvisorURL,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	return agent.NewBaseTool(
		"tripadvisor_restaurants",
		"Find popular restaurants in a city or area. The query is the place name, for example 'Jaipur'.",
		c.search,
		agent.WithTimeout(12*time.Second),
	)
}

func (c *tripAdvisorClient) search(ctx context.Context, arguments string) (string, error) {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(args.Query) == "" {
		return "", fmt.Errorf("query is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.url+"?query="+url.QueryEscape(args.Query), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", tripAdvisorHost)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tripadvisor returned status %d", resp.StatusCode)
	}

	var data tripAdvisorResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("invalid response body: %w", err)
	}

	var names []string
	for _, result := range data.Data {
		if len(names) == 5 {
			break
		}
		if result.Name != "" {
			names = append(names, result.Name)
		}
	}
	if len(names) == 0 {
		return "No restaurants found.", nil
	}
	return "Popular restaurants: " + strings.Join(names, ", "), nil
}
