// Package transport issues the SDK's HTTP calls against the service origin:
// default headers, body encoding, and translation of failed responses into
// *APIError.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"

	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"

	// ReadBodyErrorMessage is the APIError message for a 2xx body that is not JSON.
	ReadBodyErrorMessage = "Failed to read response body"

	maxErrorBodyBytes = 1 << 20
)

// HeaderProvider supplies the authentication headers for the current session.
type HeaderProvider interface {
	AuthHeaders() map[string]string
}

// HeaderProviderFunc adapts a function to HeaderProvider.
type HeaderProviderFunc func() map[string]string

func (f HeaderProviderFunc) AuthHeaders() map[string]string {
	return f()
}

// Params are the optional parts of a call.
type Params struct {
	// Query parameters appended to the URL.
	Query map[string]string

	// Headers replace the defaults entirely when non-nil, including the
	// authentication headers.
	Headers map[string]string

	// Body is JSON encoded, or form encoded when the Content-Type header is
	// application/x-www-form-urlencoded. A nil Body sends no body.
	Body any
}

// Client calls a single service origin.
type Client struct {
	origin     string
	httpClient *http.Client
	headers    HeaderProvider
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the client requests are sent with.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithHeaderProvider sets where authentication headers come from.
func WithHeaderProvider(headers HeaderProvider) Option {
	return func(c *Client) {
		c.headers = headers
	}
}

// WithLogger sets the logger calls are traced to.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a client for origin, e.g. "https://myapp.transposit.io".
func New(origin string, opts ...Option) (*Client, error) {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("invalid service origin %q: %w", origin, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid service origin %q: must be an absolute URL", origin)
	}

	c := &Client{
		origin:     origin,
		httpClient: http.DefaultClient,
		logger:     log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Origin returns the service origin without a trailing slash.
func (c *Client) Origin() string {
	return c.origin
}

// URL joins the origin, path and query parameters.
func (c *Client) URL(path string, query map[string]string) (string, error) {
	u, err := url.Parse(c.origin + path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, v := range query {
			q.Add(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// Call issues a request and returns the response of a 2xx call; the caller
// must close its body. Non-2xx responses are returned as *APIError and network
// failures are returned wrapped.
func (c *Client) Call(ctx context.Context, method, path string, p Params) (*http.Response, error) {
	headers := p.Headers
	if headers == nil {
		headers = c.defaultHeaders()
	}

	target, err := c.URL(path, p.Query)
	if err != nil {
		return nil, err
	}

	body, err := encodeBody(headerValue(headers, HeaderContentType), p.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("transposit call failed")
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("transposit call")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return nil, newAPIError(resp, method, path, raw)
}

// CallJSON issues a request and decodes the 2xx body into out. A nil out
// discards the body.
func (c *Client) CallJSON(ctx context.Context, method, path string, p Params, out any) error {
	resp, err := c.Call(ctx, method, path, p)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := DecodeJSON(resp, method, path, out); err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("undecodable response body")
		return err
	}
	return nil
}

// DecodeJSON decodes the body of a successful response into out. A nil out
// discards the body. The caller still owns closing the body.
func DecodeJSON(resp *http.Response, method, path string, out any) error {
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return ResponseError(resp, method, path, ReadBodyErrorMessage)
	}
	return nil
}

func (c *Client) defaultHeaders() map[string]string {
	headers := map[string]string{
		HeaderContentType: ContentTypeJSON,
	}
	if c.headers != nil {
		for k, v := range c.headers.AuthHeaders() {
			headers[k] = v
		}
	}
	return headers
}

// headerValue looks key up case-insensitively.
func headerValue(headers map[string]string, key string) string {
	for k, v := range headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}
