// Package api is a thin typed client for the JobFlow REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog"
)

const DefaultBaseURL = "http://localhost:3001/"

// Doer sends a prepared request. *network.Client satisfies it.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
}

// CredentialStore yields the bearer token for outgoing requests and forgets
// it when the backend rejects it.
type CredentialStore interface {
	Token() string
	Clear() error
}

type Option func(*Client)

func WithCredentials(store CredentialStore) Option {
	return func(c *Client) { c.credentials = store }
}

// WithUnauthorizedHandler registers fn to run after a 401 has cleared the
// stored credential.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// Client exposes one method per backend call. It never retries.
type Client struct {
	baseURL        *url.URL
	http           Doer
	credentials    CredentialStore
	onUnauthorized func()
	logger         zerolog.Logger
}

func New(baseURL string, doer Doer, opts ...Option) (*Client, error) {
	if doer == nil {
		return nil, fmt.Errorf("http client is required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("api url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: parsed,
		http:    doer,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithCredentials returns a copy of c that reads and clears the token via
// store. The web frontend uses it to scope the token to one browser.
func (c *Client) WithCredentials(store CredentialStore) *Client {
	clone := *c
	clone.credentials = store
	return &clone
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

type request struct {
	method string
	path   []string
	params any
	body   any
}

func (c *Client) endpoint(path []string, params any) (string, error) {
	target := c.baseURL.JoinPath(path...)
	if params != nil {
		values, err := query.Values(params)
		if err != nil {
			return "", fmt.Errorf("encode query: %w", err)
		}
		target.RawQuery = values.Encode()
	}
	return target.String(), nil
}

func (c *Client) send(ctx context.Context, r request) (*fhttp.Response, error) {
	target, err := c.endpoint(r.path, r.params)
	if err != nil {
		return nil, &Error{Message: err.Error(), Err: err}
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("encode request: %v", err), Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := fhttp.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, &Error{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	if c.credentials != nil {
		if token := strings.TrimSpace(c.credentials.Token()); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", r.method).Str("url", target).Msg("backend request failed")
		return nil, transportError(err)
	}
	c.logger.Debug().
		Str("method", r.method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend request")

	if resp.StatusCode == fhttp.StatusUnauthorized {
		resp.Body.Close()
		c.handleUnauthorized()
		return nil, &Error{
			Status:  resp.StatusCode,
			Message: "Your session has expired. Please log in again.",
			Err:     ErrUnauthorized,
		}
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, statusError(resp.StatusCode, resp.Body)
	}
	return resp, nil
}

func (c *Client) handleUnauthorized() {
	if c.credentials != nil {
		if err := c.credentials.Clear(); err != nil {
			c.logger.Warn().Err(err).Msg("clear credential")
		}
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func (c *Client) doJSON(ctx context.Context, r request, out any) error {
	resp, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return &Error{Status: resp.StatusCode, Message: "Invalid response from server", Err: err}
		}
		return &Error{Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err), Err: err}
	}
	return nil
}

func (c *Client) doText(ctx context.Context, r request) (string, error) {
	resp, err := c.send(ctx, r)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(err)
	}
	return strings.TrimSpace(string(data)), nil
}
