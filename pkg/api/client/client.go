// Package client provides typed access to the jobdeck API for interactive
// tools.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiPrefix = "/api/v1"

// Client talks to the jobdeck API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customises client instantiation.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// New constructs a Client pointing at the provided API base URL.
func New(base string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = "http://localhost:5000"
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	cli := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli, nil
}

// APIError represents an error response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api request failed with status %d", e.Status)
	}
	return fmt.Sprintf("api request failed (%d): %s", e.Status, e.Message)
}

// AuthResponse is the register/login payload.
type AuthResponse struct {
	User struct {
		Name string `json:"name"`
	} `json:"user"`
	Token string `json:"token"`
}

// Job mirrors the server's job representation.
type Job struct {
	ID        string    `json:"id"`
	Company   string    `json:"company"`
	Position  string    `json:"position"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JobInput carries the mutable fields of create and update calls. Status may
// be empty; the server defaults it on create and preserves it on update.
type JobInput struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Status   string `json:"status,omitempty"`
}

// JobList is the collection payload.
type JobList struct {
	Jobs  []Job `json:"jobs"`
	Count int   `json:"Count"`
}

// StatusCount pairs a status with the number of jobs in it.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Register creates an account and returns the combined user/token payload.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/auth/register", body, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates and returns the combined user/token payload.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/auth/login", body, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListJobs returns the caller's jobs, newest first.
func (c *Client) ListJobs(ctx context.Context, token string) (*JobList, error) {
	var resp JobList
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/jobs", nil, token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetJob fetches a single owned job.
func (c *Client) GetJob(ctx context.Context, token, id string) (*Job, error) {
	var resp struct {
		Job Job `json:"job"`
	}
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/jobs/"+url.PathEscape(id), nil, token, &resp); err != nil {
		return nil, err
	}
	return &resp.Job, nil
}

// CreateJob stores a new job.
func (c *Client) CreateJob(ctx context.Context, token string, in JobInput) (*Job, error) {
	var resp struct {
		Job Job `json:"job"`
	}
	if err := c.do(ctx, http.MethodPost, apiPrefix+"/jobs", in, token, &resp); err != nil {
		return nil, err
	}
	return &resp.Job, nil
}

// UpdateJob replaces the mutable fields of an owned job.
func (c *Client) UpdateJob(ctx context.Context, token, id string, in JobInput) (*Job, error) {
	var resp struct {
		Job Job `json:"job"`
	}
	if err := c.do(ctx, http.MethodPatch, apiPrefix+"/jobs/"+url.PathEscape(id), in, token, &resp); err != nil {
		return nil, err
	}
	return &resp.Job, nil
}

// DeleteJob removes an owned job.
func (c *Client) DeleteJob(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, apiPrefix+"/jobs/"+url.PathEscape(id), nil, token, nil)
}

// JobStats returns per-status counts for the caller's jobs.
func (c *Client) JobStats(ctx context.Context, token string) ([]StatusCount, error) {
	var resp struct {
		Stats []StatusCount `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, apiPrefix+"/jobs/stats", nil, token, &resp); err != nil {
		return nil, err
	}
	return resp.Stats, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, token string, v any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint := c.baseURL + path
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return APIError{Status: resp.StatusCode, Message: extractError(resp.Body)}
	}
	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func extractError(body io.Reader) string {
	if body == nil {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return payload.Error
}
