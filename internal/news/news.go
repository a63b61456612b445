// Package news fetches career and hiring related headlines from a
// GNews-compatible API.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the production news API root.
const DefaultBaseURL = "https://gnews.io/api/v4"

// DefaultTimeout is the per-request HTTP timeout.
const DefaultTimeout = 10 * time.Second

// DefaultQuery is the fixed search used by the career-news surface.
const DefaultQuery = "careers OR hiring OR \"job market\" OR layoffs"

// Error represents a failure talking to the news API.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("news error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("news error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Article is one headline returned to API consumers.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url"`
}

// Client talks to a GNews-compatible API.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
}

// NewClient creates a news client.
func NewClient(apiKey string) *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		language:   "en",
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// WithBaseURL overrides the API root, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// CareerNews fetches up to max career-related headlines using the fixed
// query.
func (c *Client) CareerNews(ctx context.Context, max int) ([]Article, error) {
	return c.Search(ctx, DefaultQuery, max)
}

// Search fetches headlines for an arbitrary query.
func (c *Client) Search(ctx context.Context, query string, max int) ([]Article, error) {
	if max <= 0 {
		max = 10
	}
	params := url.Values{
		"q":      {query},
		"lang":   {c.language},
		"max":    {fmt.Sprintf("%d", max)},
		"apikey": {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, &Error{Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	var payload struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			Image       string `json:"image"`
		} `json:"articles"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &Error{Message: "failed to decode response", Cause: err}
	}

	articles := make([]Article, 0, len(payload.Articles))
	for _, raw := range payload.Articles {
		articles = append(articles, Article{
			Title:       raw.Title,
			Description: raw.Description,
			URL:         raw.URL,
			ImageURL:    raw.Image,
		})
	}
	return articles, nil
}
