// Package client is the login form side of the service: it checks the form
// locally and then asks the server for a verdict. Passing the local checks is
// never treated as a successful login.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"flixauth/internal/models"
)

const DefaultTimeout = 10 * time.Second

// ErrUnexpectedResponse is returned when the server answers with a status or
// body outside the /login contract.
var ErrUnexpectedResponse = errors.New("unexpected response from login server")

// Client talks to a running login server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client for the server at baseURL, e.g.
// "http://localhost:5000".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is the server's answer to a login attempt.
type Result struct {
	Verdict models.Verdict
	Message string
}

// Authenticated reports whether the server accepted the credentials.
func (r *Result) Authenticated() bool {
	return r.Verdict == models.Authenticated
}

// Login validates the form and, only if it passes, submits it to POST /login.
// Validation failures return a *ValidationError and make no network call.
func (c *Client) Login(ctx context.Context, email, password string) (*Result, error) {
	if err := ValidateForm(email, password); err != nil {
		return nil, err
	}
	if c.baseURL == "" {
		return nil, errors.New("login server URL is not configured")
	}

	body, err := json.Marshal(models.Login{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute login request: %w", err)
	}
	defer resp.Body.Close()

	verdict, ok := models.VerdictFromStatus(resp.StatusCode)
	if !ok {
		return nil, fmt.Errorf("%w: status %d", ErrUnexpectedResponse, resp.StatusCode)
	}

	var out models.LoginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	if out.Success != (verdict == models.Authenticated) {
		return nil, fmt.Errorf("%w: success=%t with status %d", ErrUnexpectedResponse, out.Success, resp.StatusCode)
	}

	log.Debug().
		Str("email", email).
		Str("verdict", verdict.String()).
		Str("request_id", resp.Header.Get("X-Request-Id")).
		Msg("Login response received")

	return &Result{Verdict: verdict, Message: out.Message}, nil
}
