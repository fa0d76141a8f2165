// Package api is the single HTTP doorway to the AgriVision backend. It owns
// the base URL, attaches the bearer token and JSON headers, normalizes
// response status into typed errors, and is the one place where an expired
// session is detected and reported back to the session layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/agrivision/agrivision/internal/common"
	"github.com/agrivision/agrivision/internal/logging"
)

// Client issues JSON requests against a configured base URL.
//
// No retries and no facade-level timeouts: cancellation is governed by the
// caller's context, and error handling beyond auth expiry is the caller's
// business.
type Client struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	// tokenSource yields the current bearer token, or "" when anonymous.
	tokenSource func() string

	// onAuthExpired is invoked once per 401 received on a token-bearing
	// request, before ErrAuthExpired is returned. This is the only place
	// the HTTP layer may touch session state.
	onAuthExpired func(ctx context.Context)
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for the given base URL, e.g.
// "http://localhost:8000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTokenSource wires the function consulted for the bearer token on every
// request. Called by the session manager during startup.
func (c *Client) SetTokenSource(fn func() string) {
	c.tokenSource = fn
}

// SetAuthExpiredHook wires the session-invalidation callback fired on a 401.
func (c *Client) SetAuthExpiredHook(fn func(ctx context.Context)) {
	c.onAuthExpired = fn
}

// validatePath rejects paths that would double the /api prefix the base URL
// already carries, and paths not rooted at "/".
func (c *Client) validatePath(path string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: path %q must start with /", ErrAmbiguousPath, path)
	}
	if path == "/api" || strings.HasPrefix(path, "/api/") {
		return fmt.Errorf("%w: path %q", ErrAmbiguousPath, path)
	}
	return nil
}

func (c *Client) token() string {
	if c.tokenSource == nil {
		return ""
	}
	return c.tokenSource()
}

// Do issues a request and returns the raw response for callers that need
// custom handling. A 401 on a token-bearing request invalidates the session
// and returns common.ErrAuthExpired; transport failures return
// common.ErrNetwork. All other responses are handed back untouched.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	return c.do(ctx, method, path, body, true)
}

func (c *Client) do(ctx context.Context, method, path string, body any, withAuth bool) (*http.Response, error) {
	if err := c.validatePath(path); err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	var token string
	if withAuth {
		token = c.token()
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", common.ErrNetwork, method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		_ = resp.Body.Close()
		if c.log != nil {
			c.log.Warn(ctx, "authenticated request rejected", "method", method, "path", path)
		}
		if c.onAuthExpired != nil {
			c.onAuthExpired(ctx)
		}
		return nil, common.ErrAuthExpired
	}

	return resp, nil
}

// Get issues a GET and returns the parsed JSON body.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.roundTrip(ctx, http.MethodGet, path, nil, true)
}

// GetPublic issues a GET without the bearer token, for endpoints that do
// not require a session. A stale token therefore can never expire the
// session through a public fetch.
func (c *Client) GetPublic(ctx context.Context, path string) (json.RawMessage, error) {
	return c.roundTrip(ctx, http.MethodGet, path, nil, false)
}

// Post issues a POST with a JSON body and returns the parsed JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.roundTrip(ctx, http.MethodPost, path, body, true)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any, withAuth bool) (json.RawMessage, error) {
	resp, err := c.do(ctx, method, path, body, withAuth)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", common.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, Message: serverMessage(data)}
	}

	var raw json.RawMessage
	if len(data) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid JSON in %s %s response: %w", method, path, err)
		}
	}
	return raw, nil
}

// serverMessage extracts the conventional {"message": "..."} field from an
// error body, tolerating bodies that are not JSON at all.
func serverMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Message
}
