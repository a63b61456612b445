// Package trends queries a job-listing API for per-category vacancy
// counts and builds the trending-categories histogram.
package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the production job-listing API root.
const DefaultBaseURL = "https://api.adzuna.com/v1/api"

// DefaultTimeout is the per-request HTTP timeout.
const DefaultTimeout = 15 * time.Second

// maxConcurrentSearches bounds the per-category fan-out so a long
// category list does not hammer the rate-limited upstream.
const maxConcurrentSearches = 8

// Error represents a failure talking to the job-listing API.
type Error struct {
	Endpoint string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("trends error for %s: %s: %v", e.Endpoint, e.Message, e.Cause)
	}
	return fmt.Sprintf("trends error for %s: %s", e.Endpoint, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Category is one job category known to the upstream.
type Category struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
}

// CategoryCount pairs a category with its current vacancy count.
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int64    `json:"count"`
}

// Client talks to an Adzuna-compatible job-listing API.
type Client struct {
	baseURL    string
	country    string
	appID      string
	appKey     string
	httpClient *http.Client
}

// NewClient creates a trends client. Country is the two-letter market
// code, e.g. "in" or "gb".
func NewClient(appID, appKey, country string) *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		country:    country,
		appID:      appID,
		appKey:     appKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// WithBaseURL overrides the API root, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// WithHTTPClient overrides the HTTP client.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

// Categories fetches the full category list. Failure here fails the
// whole trends operation since there is nothing to fan out over.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	endpoint := fmt.Sprintf("%s/jobs/%s/categories", c.baseURL, c.country)

	var payload struct {
		Results []Category `json:"results"`
	}
	if err := c.getJSON(ctx, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// CategoryCount returns the total vacancy count for one category using a
// zero-results-per-page search.
func (c *Client) CategoryCount(ctx context.Context, category Category) (int64, error) {
	endpoint := fmt.Sprintf("%s/jobs/%s/search/1", c.baseURL, c.country)

	var payload struct {
		Count int64 `json:"count"`
	}
	params := url.Values{
		"category":         {category.Tag},
		"results_per_page": {"0"},
	}
	if err := c.getJSON(ctx, endpoint, params, &payload); err != nil {
		return 0, err
	}
	return payload.Count, nil
}

// TopCategories fetches all categories, counts vacancies for each
// concurrently, and returns the top limit categories sorted by count
// descending. A failed count for one category contributes zero rather
// than failing the whole histogram.
func (c *Client) TopCategories(ctx context.Context, limit int) ([]CategoryCount, error) {
	categories, err := c.Categories(ctx)
	if err != nil {
		return nil, err
	}

	counts := make([]CategoryCount, len(categories))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentSearches)
	for i, category := range categories {
		group.Go(func() error {
			count, err := c.CategoryCount(groupCtx, category)
			if err != nil {
				// Rate-limited or flaky upstream; a zero bar beats no chart.
				count = 0
			}
			counts[i] = CategoryCount{Category: category, Count: count}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if limit > 0 && limit < len(counts) {
		counts = counts[:limit]
	}
	return counts, nil
}

// getJSON performs an authenticated GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return &Error{Endpoint: endpoint, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Endpoint: endpoint, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Endpoint: endpoint, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return &Error{Endpoint: endpoint, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Endpoint: endpoint, Message: "failed to decode response", Cause: err}
	}
	return nil
}
