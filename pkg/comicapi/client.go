// Package comicapi is the single choke point for all ComicReader backend I/O.
//
// Every call attaches the persisted bearer token, serializes JSON bodies, and
// normalizes non-2xx responses into *APIError values. There is no retry,
// backoff, or request deduplication: each call is independent and at-most-once.
package comicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ppk205/comicreader/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// APIError is an HTTP-level failure normalized from a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// Config captures the settings for constructing a Client.
type Config struct {
	// BaseURL is the preferred backend base, e.g. http://localhost:8080/Comic/api.
	BaseURL string
	// Candidates are additional bases probed in order when BaseURL is down.
	Candidates []string
	// TokenStore supplies the bearer token, read fresh on every request.
	TokenStore ports.TokenStore
	// HTTPClient overrides the default client (30s timeout, cookie jar).
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client talks to the ComicReader REST API.
type Client struct {
	candidates []string
	tokens     ports.TokenStore
	http       *http.Client
	log        zerolog.Logger

	mu       sync.Mutex
	resolved string
}

// New constructs a Client. Candidate base URLs are sanitized and deduplicated;
// the configured BaseURL is always probed first.
func New(cfg Config) *Client {
	seen := make(map[string]struct{})
	var candidates []string
	for _, raw := range append([]string{cfg.BaseURL}, cfg.Candidates...) {
		base := strings.TrimRight(strings.TrimSpace(raw), "/")
		if base == "" {
			continue
		}
		if _, ok := seen[base]; ok {
			continue
		}
		seen[base] = struct{}{}
		candidates = append(candidates, base)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// Cookie jar so a backend session cookie (JSESSIONID) rides along
		// with subsequent requests, matching credentials: "include".
		jar, _ := cookiejar.New(nil)
		httpClient = &http.Client{Timeout: defaultTimeout, Jar: jar}
	}

	return &Client{
		candidates: candidates,
		tokens:     cfg.TokenStore,
		http:       httpClient,
		log:        cfg.Logger,
	}
}

// BaseURL returns the base currently in use: the resolved one when probing has
// run, otherwise the first candidate.
func (c *Client) BaseURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resolved != "" {
		return c.resolved
	}
	if len(c.candidates) > 0 {
		return c.candidates[0]
	}
	return ""
}

// resolveBase probes each candidate's /health endpoint once and memoizes the
// first reachable base. When none responds, the first candidate is memoized as
// a fallback so the probe is not repeated per request.
func (c *Client) resolveBase(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resolved != "" {
		return c.resolved
	}

	for _, base := range c.candidates {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/health", nil)
		if err != nil {
			continue
		}
		resp, err := c.http.Do(req)
		if err != nil {
			c.log.Warn().Str("base", base).Err(err).Msg("backend probe failed")
			continue
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			c.log.Info().Str("base", base).Msg("using backend base URL")
			c.resolved = base
			return base
		}
	}

	if len(c.candidates) == 0 {
		return ""
	}
	c.resolved = c.candidates[0]
	c.log.Warn().Str("base", c.resolved).Msg("no backend candidate reachable, falling back")
	return c.resolved
}

// RequestOptions carries the optional parts of a Request call.
type RequestOptions struct {
	// Body is the request payload. When set and ContentType is empty the
	// request is sent as application/json. Multipart callers must supply
	// the writer's own ContentType so the boundary survives.
	Body        io.Reader
	ContentType string
	Header      http.Header
}

// Request issues one HTTP call against the backend.
//
// The persisted token, when present, is attached as exactly one
// Authorization: Bearer header. Non-2xx responses become *APIError with the
// message extracted from a JSON "message"/"error" field, falling back to the
// raw body. A 204 or empty body resolves without touching out. JSON bodies
// are decoded into out; anything else is assigned when out is a *string.
func (c *Client) Request(ctx context.Context, method, path string, opts *RequestOptions, out any) error {
	data, contentType, err := c.do(ctx, method, path, opts)
	if err != nil {
		return err
	}
	return decodeBody(data, contentType, out)
}

func (c *Client) do(ctx context.Context, method, path string, opts *RequestOptions) ([]byte, string, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := c.resolveBase(ctx) + path

	req, err := http.NewRequestWithContext(ctx, method, url, opts.Body)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	for k, vals := range opts.Header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	if opts.ContentType != "" {
		req.Header.Set("Content-Type", opts.ContentType)
	} else if opts.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("read token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Transport failures (DNS, refused, timeout) propagate as-is.
		return nil, "", fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body, resp.StatusCode)}
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg(apiErr.Message)
		return nil, "", apiErr
	}

	if resp.StatusCode == http.StatusNoContent || resp.ContentLength == 0 {
		return nil, "", nil
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// errorMessage extracts a human-readable message from an error body: a JSON
// "message" or "error" field when parseable, otherwise the raw text.
func errorMessage(body []byte, status int) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return http.StatusText(status)
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return string(trimmed)
}

// HealthCheck reports whether the backend answers its /health endpoint.
func (c *Client) HealthCheck(ctx context.Context) bool {
	return c.Request(ctx, http.MethodGet, "/health", nil, nil) == nil
}

// jsonBody marshals v for use as a request body.
func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	return bytes.NewReader(data), nil
}
