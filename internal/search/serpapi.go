package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://serpapi.com"

// Client queries SerpAPI for organic Google results and condenses them into
// a short snippet summary for model context.
type Client struct {
	apiKey     string
	baseURL    string
	location   string
	httpClient *http.Client
}

type organicResult struct {
	Snippet string `json:"snippet"`
}

type searchResponse struct {
	OrganicResults []organicResult `json:"organic_results"`
	Error          string          `json:"error,omitempty"`
}

func NewClient(apiKey, location string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		location:   location,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithBaseURL overrides the API host, used by tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

// Search returns the top 3 organic snippets joined with " | ". Only snippets
// are kept to limit how much third-party text reaches the model.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("location", c.location)
	params.Set("hl", "en")
	params.Set("gl", "us")
	params.Set("google_domain", "google.com")
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search provider returned status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode search response: %w", err)
	}
	if payload.Error != "" {
		return "", fmt.Errorf("search provider error: %s", payload.Error)
	}

	snippets := make([]string, 0, 3)
	for _, r := range payload.OrganicResults {
		s := strings.TrimSpace(r.Snippet)
		if s == "" {
			continue
		}
		snippets = append(snippets, s)
		if len(snippets) == 3 {
			break
		}
	}
	if len(snippets) == 0 {
		return "No search results found.", nil
	}
	return strings.Join(snippets, " | "), nil
}
