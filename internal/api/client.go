package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/five82/fitlog/internal/auth"
	"github.com/five82/fitlog/internal/logger"
)

// Client talks to the diet backend HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	tokens    auth.TokenStore
}

const (
	defaultBaseURL   = "http://127.0.0.1:8000"
	defaultUserAgent = "fitlog/0.1"
	defaultTimeout   = 10 * time.Second
	maxBodyBytes     = 4 << 20
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewClient builds a Client for baseURL. tokens supplies the bearer
// credential for authenticated endpoints and receives new tokens on login.
func NewClient(baseURL string, tokens auth.TokenStore, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if tokens == nil {
		return nil, fmt.Errorf("token store is required")
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
		tokens:    tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint describes one remote operation.
type Endpoint struct {
	Method string
	Path   string
	Auth   bool
}

// Params carries the query string and JSON body of a call.
type Params struct {
	Query url.Values
	Body  any
}

// Call issues ep and decodes the (envelope-unwrapped) payload into dest.
// Every failure is an *Error. Authenticated endpoints fail with
// KindUnauthenticated before any I/O when no token is stored. Nothing is
// retried.
func (c *Client) Call(ctx context.Context, ep Endpoint, params Params, dest any) error {
	if c == nil {
		return ErrNilClient
	}

	var token string
	if ep.Auth {
		stored, err := c.tokens.Get()
		if err != nil {
			return &Error{Kind: KindUnauthenticated, Message: "stored credential unavailable", Err: err}
		}
		if stored == "" {
			return &Error{Kind: KindUnauthenticated, Message: "not logged in"}
		}
		token = stored
	}

	reqURL := c.resolve(ep.Path, params.Query)

	var body io.Reader
	if params.Body != nil {
		payload, err := json.Marshal(params.Body)
		if err != nil {
			return &Error{Kind: KindClientError, Message: "invalid request body", Err: err}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, ep.Method, reqURL.String(), body)
	if err != nil {
		return &Error{Kind: KindClientError, Message: "invalid request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug("api request failed", "method", ep.Method, "path", ep.Path, "error", err)
		return transportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return transportError(ctx, err)
	}
	logger.Debug("api request",
		"method", ep.Method,
		"path", ep.Path,
		"status", resp.StatusCode,
		"elapsed", time.Since(started).Round(time.Millisecond),
	)

	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode, raw)
	}
	return decodePayload(raw, dest)
}

// decodePayload unwraps an optional {code, message, data} envelope and
// decodes the payload into dest.
func decodePayload(raw []byte, dest any) error {
	payload := bytes.TrimSpace(raw)
	if len(payload) > 0 && payload[0] == '{' {
		var env envelope
		if err := json.Unmarshal(payload, &env); err == nil && env.isEnvelope() {
			if code := *env.Code; code != 0 && code != http.StatusOK {
				return classify(code, env.Message)
			}
			payload = bytes.TrimSpace(env.Data)
		}
	}
	if dest == nil {
		return nil
	}
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return decodeError(fmt.Errorf("empty response body"))
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return decodeError(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// isEnvelope reports whether a decoded object looks like the wrapper rather
// than a bare payload that happens to carry a code field.
func (e envelope) isEnvelope() bool {
	return e.Code != nil && (len(e.Data) > 0 || strings.TrimSpace(e.Message) != "")
}

func (c *Client) resolve(p string, query url.Values) *url.URL {
	u := *c.baseURL
	u.Path = path.Join("/", c.baseURL.Path, p)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return &u
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base_url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
