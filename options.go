package transposit

import (
	"net/http"
	"time"

	"github.com/jrsteele09/go-transposit-sdk/browser"
	"github.com/jrsteele09/go-transposit-sdk/session"
	"github.com/jrsteele09/go-transposit-sdk/storage"
	"github.com/rs/zerolog"
)

const (
	DefaultClientID      = "sdk"
	DefaultScope         = "openid app"
	DefaultLogoutTimeout = 5 * time.Second

	// PublicTokenHeader carries the publicToken claim in AuthModePublicToken.
	PublicTokenHeader = "X-PUBLIC-TOKEN"
)

// AuthMode selects how calls are authenticated and what is persisted.
type AuthMode int

const (
	// AuthModeBearer sends "Authorization: Bearer <token>" and persists the
	// raw access token.
	AuthModeBearer AuthMode = iota

	// AuthModePublicToken sends the publicToken claim in PublicTokenHeader and
	// persists the decoded claims.
	AuthModePublicToken
)

func (m AuthMode) String() string {
	switch m {
	case AuthModeBearer:
		return "bearer"
	case AuthModePublicToken:
		return "public_token"
	}
	return "unknown"
}

func (m AuthMode) sessionMode() session.Mode {
	if m == AuthModePublicToken {
		return session.ModeClaims
	}
	return session.ModeAccessToken
}

// ParseAuthMode maps "bearer" or "public_token" to an AuthMode. Empty means bearer.
func ParseAuthMode(s string) (AuthMode, bool) {
	switch s {
	case "", "bearer":
		return AuthModeBearer, true
	case "public_token":
		return AuthModePublicToken, true
	}
	return AuthModeBearer, false
}

// Option configures a Client.
type Option func(*Client)

// WithStore sets the persistent storage area. Defaults to an in-memory store.
func WithStore(store storage.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithBrowser sets the navigation collaborator. Defaults to the system browser.
func WithBrowser(b browser.Browser) Option {
	return func(c *Client) {
		c.browser = b
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithAuthMode(mode AuthMode) Option {
	return func(c *Client) {
		c.authMode = mode
	}
}

func WithClientID(clientID string) Option {
	return func(c *Client) {
		c.clientID = clientID
	}
}

func WithScope(scope string) Option {
	return func(c *Client) {
		c.scope = scope
	}
}

// WithVerifierGenerator replaces the PKCE code verifier generator.
func WithVerifierGenerator(generate func() string) Option {
	return func(c *Client) {
		c.generateVerifier = generate
	}
}

// WithLogoutTimeout bounds the server-side logout call made by SignOut.
func WithLogoutTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.logoutTimeout = d
	}
}
