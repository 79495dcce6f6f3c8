// Package openai is an unofficial client for the OpenAI HTTP API and
// API-compatible providers. Each resource family (chat, completions,
// embeddings, models, moderations, files, assistants, ...) lives in its
// own file and maps one typed request onto one authenticated HTTP call.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the OpenAI API endpoint used when no override is set.
const DefaultBaseURL = "https://api.openai.com/v1"

const (
	apiKeyEnv  = "OPENAI_KEY"
	baseURLEnv = "OPENAI_BASE_URL"

	// LLM requests can take a while; matches the default used elsewhere
	// in our tooling.
	defaultTimeout = 120 * time.Second

	assistantsBeta = "assistants=v2"
)

// Credentials holds the bearer token and base URL used to authenticate
// against the API.
type Credentials struct {
	APIKey  string
	BaseURL string
}

// CredentialsFromEnv builds Credentials from the OPENAI_KEY and optional
// OPENAI_BASE_URL environment variables. The API key may be empty (e.g.
// for local OpenAI-compatible servers that do not authenticate).
func CredentialsFromEnv() Credentials {
	baseURL := os.Getenv(baseURLEnv)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Credentials{
		APIKey:  os.Getenv(apiKeyEnv),
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Client handles communication with the API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	creds      Credentials
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger attaches a logger; requests and responses are logged at
// debug level. The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the given credentials.
func NewClient(creds Credentials, opts ...Option) *Client {
	if creds.BaseURL == "" {
		creds.BaseURL = DefaultBaseURL
	}
	creds.BaseURL = strings.TrimRight(creds.BaseURL, "/")

	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		creds:      creds,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Usage reports token consumption for a request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// List is the envelope the API uses for paginated collections.
type List[T any] struct {
	Object  string  `json:"object,omitempty"`
	Data    []T     `json:"data"`
	FirstID *string `json:"first_id,omitempty"`
	LastID  *string `json:"last_id,omitempty"`
	HasMore bool    `json:"has_more"`
}

// newRequest builds an HTTP request for a route relative to the base URL
// with authorization and content headers applied.
func (c *Client) newRequest(ctx context.Context, method, route string, body io.Reader, contentType string, beta bool) (*http.Request, error) {
	url := c.creds.BaseURL + "/" + strings.TrimLeft(route, "/")

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.creds.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.creds.APIKey)
	}
	if beta {
		req.Header.Set("OpenAI-Beta", assistantsBeta)
	}
	return req, nil
}

// do sends the request, maps non-2xx responses to *APIError, and decodes
// a successful body into out (which may be nil).
func (c *Client) do(req *http.Request, out any) error {
	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Msg("api response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, route string, out any, beta bool) error {
	req, err := c.newRequest(ctx, http.MethodGet, route, nil, "", beta)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, route string, body, out any, beta bool) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, http.MethodPost, route, reader, contentType, beta)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) del(ctx context.Context, route string, out any, beta bool) error {
	req, err := c.newRequest(ctx, http.MethodDelete, route, nil, "", beta)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// postForm sends a multipart/form-data request. The fill callback writes
// the form parts.
func (c *Client) postForm(ctx context.Context, route string, fill func(w *multipart.Writer) error, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := fill(w); err != nil {
		return fmt.Errorf("failed to build form: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, route, &buf, w.FormDataContentType(), false)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// listAll walks a paginated collection in ascending order, following
// last_id cursors until has_more is false.
func listAll[T any](ctx context.Context, c *Client, route string, after string, beta bool) ([]T, error) {
	var data []T
	for {
		url := route + "?order=asc"
		if after != "" {
			url += "&after=" + after
		}

		var page List[T]
		if err := c.get(ctx, url, &page, beta); err != nil {
			return nil, err
		}
		data = append(data, page.Data...)

		if !page.HasMore || page.LastID == nil || *page.LastID == "" {
			return data, nil
		}
		after = *page.LastID
	}
}
