package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client talks to the repair system API. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSession attaches an existing session, e.g. one restored from disk.
func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

// New creates a client for the API rooted at baseURL, which should
// include the /api prefix, e.g. "http://localhost:1234/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
		session:    NewSession(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session exposes the client's session store.
func (c *Client) Session() *Session {
	return c.session
}

// do issues a request, attaching the bearer token when present. A 401
// response clears the session before the error reaches the caller. The
// response body, when out is non-nil, is decoded into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// send finishes a prepared request. Used directly by the multipart
// upload path, which builds its own body and content type.
func (c *Client) send(req *http.Request, out interface{}) error {
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// A 401 means the stored credential is dead, except on the auth
	// endpoints where it just means bad credentials; a failed login
	// must not tear down a previously working session.
	if resp.StatusCode == http.StatusUnauthorized && !isAuthPath(req.URL.Path) {
		c.session.invalidate()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: decodeErrorMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func isAuthPath(path string) bool {
	return strings.HasSuffix(path, "/auth/login") || strings.HasSuffix(path, "/auth/register")
}

// decodeErrorMessage extracts the server's {"error": msg} envelope.
func decodeErrorMessage(r io.Reader) string {
	var envelope struct {
		Error string `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil {
		return ""
	}
	if json.Unmarshal(data, &envelope) == nil && envelope.Error != "" {
		return envelope.Error
	}
	return strings.TrimSpace(string(data))
}
