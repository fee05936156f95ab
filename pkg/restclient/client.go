// Package restclient wraps the backend REST API transport: every endpoint
// answers a JSON envelope {success, message, data, errors}, requests carry a
// bearer token when a session exists, and a 401 forces the session to be
// dropped through a registered hook.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-transport failure: the server answered but rejected the
// request (HTTP status >= 400 or success=false in the envelope).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

// TokenSource supplies the bearer token for outgoing requests. An empty
// token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource
	Logger  *slog.Logger
}

type Client struct {
	base           string
	http           *http.Client
	tokens         TokenSource
	onUnauthorized func()
	log            *slog.Logger
}

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		base:   strings.TrimRight(opts.BaseURL, "/"),
		http:   &http.Client{Timeout: timeout},
		tokens: opts.Tokens,
		log:    log,
	}
}

// SetUnauthorizedHandler registers the hook invoked whenever the server
// answers 401. Called at most once per failing request, before do returns.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn("request rejected, dropping session", slog.String("path", path))
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: decode data: %w", method, path, err)
		}
	}

	return nil
}
