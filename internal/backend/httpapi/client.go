// Package httpapi implements the backend contract over the search
// service's JSON REST API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kailas-cloud/fedsearch/internal/backend"
	"github.com/kailas-cloud/fedsearch/internal/domain"
	"github.com/kailas-cloud/fedsearch/internal/domain/schema"
)

const defaultTimeout = 10 * time.Second

// apiKeyHeader carries the backend API key on every request.
const apiKeyHeader = "X-API-Key"

// Config holds connection parameters for the search backend.
type Config struct {
	BaseURL string
	APIKey  string
	// Timeout applies to every search and schema call. This is the single
	// network timeout of the whole engine; there is no orchestrator-level
	// deadline on top of it.
	Timeout time.Duration
}

// Client talks to the search backend over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Compile-time check: Client implements backend.Searcher.
var _ backend.Searcher = (*Client)(nil)

// New creates a backend client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Search executes one collection search call.
func (c *Client) Search(
	ctx context.Context, collection string, params backend.Params,
) (backend.Response, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return backend.Response{}, fmt.Errorf("encode search params: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s/documents/search", c.baseURL, collection)
	var resp backend.Response
	if err := c.do(ctx, http.MethodPost, url, bytes.NewReader(body), &resp); err != nil {
		return backend.Response{}, fmt.Errorf("search collection %q: %w", collection, err)
	}
	return resp, nil
}

// Schema retrieves one collection's field schema.
func (c *Client) Schema(ctx context.Context, collection string) (schema.Schema, error) {
	url := fmt.Sprintf("%s/collections/%s", c.baseURL, collection)
	var sch schema.Schema
	if err := c.do(ctx, http.MethodGet, url, nil, &sch); err != nil {
		return schema.Schema{}, fmt.Errorf("fetch schema %q: %w", collection, err)
	}
	return sch, nil
}

// Ping checks backend reachability via its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health returned %d", domain.ErrBackendUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorBody is the backend's error response shape.
type errorBody struct {
	Message string `json:"message"`
}

func statusError(resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)
	if eb.Message == "" {
		eb.Message = resp.Status
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, eb.Message)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, eb.Message)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", domain.ErrBackendUnavailable, eb.Message)
	default:
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, eb.Message)
	}
}
