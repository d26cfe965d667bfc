// Package firecrawl is a thin client for the Firecrawl search and extract
// endpoints. It owns the HTTP concerns only: auth, timeouts and error
// mapping. Interpreting the results is the search package's job.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.firecrawl.dev/v1"
	httpTimeout    = 30 * time.Second

	// ExtractLimit caps how many URLs a single extract call may carry.
	// Extraction is slow and billed per URL, so enrichment stops at the
	// top results no matter how many hits a search produced.
	ExtractLimit = 5
)

// extractPrompt is the natural-language instruction sent with every extract
// call, paired with extractSchema describing the wanted shape.
const extractPrompt = "Extract job title, company name, location, salary range, " +
	"job type (remote/hybrid/onsite), and job description"

var extractSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":        map[string]any{"type": "string"},
		"company":      map[string]any{"type": "string"},
		"location":     map[string]any{"type": "string"},
		"salary":       map[string]any{"type": "string"},
		"locationType": map[string]any{"type": "string"},
		"description":  map[string]any{"type": "string"},
	},
}

// ErrNoAPIKey is returned before any network call when the credential is
// missing from the environment.
var ErrNoAPIKey = errors.New("FIRECRAWL_API_KEY is not configured")

// GatewayError is a non-success response from the Firecrawl API.
type GatewayError struct {
	Status int
	Body   string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("firecrawl returned %d: %s", e.Status, e.Body)
}

// SearchResult is a single raw hit from the search endpoint.
type SearchResult struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Markdown    string `json:"markdown,omitempty"`
}

// JobDetail is the structured record the extract endpoint fills in for one
// URL. Empty strings mean the extractor found nothing for that field.
type JobDetail struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Salary       string `json:"salary"`
	LocationType string `json:"locationType"`
	Description  string `json:"description"`
}

// Client calls the Firecrawl REST API with bearer-token auth.
// BaseURL is overridable so tests can point it at a local server.
type Client struct {
	APIKey  string
	BaseURL string
	client  *http.Client
}

// NewClient constructs a Client with a shared HTTP client and timeout.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type searchResponse struct {
	Success bool           `json:"success"`
	Data    []SearchResult `json:"data"`
}

// Search runs the combined query against the search endpoint. The limit is
// advisory: the API may return fewer hits, and zero hits is a valid result,
// not an error.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if c.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	body, err := c.post(ctx, "/search", searchRequest{Query: query, Limit: limit})
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return resp.Data, nil
}

type extractRequest struct {
	URLs   []string       `json:"urls"`
	Prompt string         `json:"prompt"`
	Schema map[string]any `json:"schema"`
}

type extractResponse struct {
	Success bool         `json:"success"`
	Data    []*JobDetail `json:"data"`
}

// Extract asks the extract endpoint for structured details on the first
// ExtractLimit URLs. The returned slice always has one entry per requested
// URL, in request order, with nil marking an extraction miss.
func (c *Client) Extract(ctx context.Context, urls []string) ([]*JobDetail, error) {
	if c.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if len(urls) > ExtractLimit {
		urls = urls[:ExtractLimit]
	}
	if len(urls) == 0 {
		return nil, nil
	}

	body, err := c.post(ctx, "/extract", extractRequest{
		URLs:   urls,
		Prompt: extractPrompt,
		Schema: extractSchema,
	})
	if err != nil {
		return nil, err
	}

	var resp extractResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode extract response: %w", err)
	}

	// Pad or trim to keep positional correspondence with the request.
	details := make([]*JobDetail, len(urls))
	copy(details, resp.Data)
	return details, nil
}

// post sends an authenticated JSON POST and returns the response body.
// Non-2xx statuses become a *GatewayError carrying status and body.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &GatewayError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
