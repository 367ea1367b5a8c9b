// Package transposit is a client for apps hosted on Transposit. It signs the
// user in with the hosted login (OAuth 2.0 authorization code with PKCE),
// keeps the resulting session in a persistent storage area, and runs the
// app's operations on the user's behalf.
//
// A Client holds at most one session. Clients configured with separate
// storage areas do not interfere with each other.
package transposit

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/jrsteele09/go-transposit-sdk/browser"
	errs "github.com/jrsteele09/go-transposit-sdk/internal/errors"
	"github.com/jrsteele09/go-transposit-sdk/oauthmodel"
	"github.com/jrsteele09/go-transposit-sdk/pkce"
	"github.com/jrsteele09/go-transposit-sdk/session"
	"github.com/jrsteele09/go-transposit-sdk/stash"
	"github.com/jrsteele09/go-transposit-sdk/storage"
	"github.com/jrsteele09/go-transposit-sdk/token"
	"github.com/jrsteele09/go-transposit-sdk/transport"
	"github.com/jrsteele09/go-transposit-sdk/usersetting"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Client is the session controller for one service origin.
type Client struct {
	mu      sync.RWMutex
	session *session.Session
	user    *oauthmodel.User

	authMode         AuthMode
	clientID         string
	scope            string
	logoutTimeout    time.Duration
	generateVerifier func() string

	store      storage.Store
	browser    browser.Browser
	httpClient *http.Client
	logger     zerolog.Logger

	sessions *session.Store
	pkce     *pkce.Manager
	http     *transport.Client
}

// New returns a client for the app hosted at origin, e.g.
// "https://myapp.transposit.io", restoring any unexpired persisted session.
func New(origin string, opts ...Option) (*Client, error) {
	c := &Client{
		authMode:      AuthModeBearer,
		clientID:      DefaultClientID,
		scope:         DefaultScope,
		logoutTimeout: DefaultLogoutTimeout,
		httpClient:    http.DefaultClient,
		logger:        log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = storage.NewInMemoryStore()
	}
	if c.browser == nil {
		c.browser = browser.NewSystem()
	}

	tr, err := transport.New(origin,
		transport.WithHTTPClient(c.httpClient),
		transport.WithHeaderProvider(transport.HeaderProviderFunc(c.authHeaders)),
		transport.WithLogger(c.logger),
	)
	if err != nil {
		return nil, err
	}
	c.http = tr

	var pkceOpts []pkce.Option
	if c.generateVerifier != nil {
		pkceOpts = append(pkceOpts, pkce.WithGenerator(c.generateVerifier))
	}
	c.pkce = pkce.NewManager(c.store, pkceOpts...)
	c.sessions = session.NewStore(c.store, c.authMode.sessionMode())

	c.load()
	return c, nil
}

func (c *Client) load() {
	sess, err := c.sessions.Load()
	switch {
	case err == nil:
		c.session = sess
	case errs.Is(err, session.ErrNoSession):
		c.logger.Debug().Err(err).Msg("no persisted session")
	default:
		c.logger.Warn().Err(err).Msg("failed to load persisted session")
	}
}

// Origin returns the service origin without a trailing slash.
func (c *Client) Origin() string {
	return c.http.Origin()
}

func (c *Client) AuthMode() AuthMode {
	return c.authMode
}

// IsSignedIn reports whether the client holds an unexpired session. Expiry is
// checked on every call.
func (c *Client) IsSignedIn() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.Valid(token.NowTimeFunc())
}

func (c *Client) authHeaders() map[string]string {
	c.mu.RLock()
	sess := c.session
	c.mu.RUnlock()
	if !sess.Valid(token.NowTimeFunc()) {
		return nil
	}
	return c.headersFor(sess)
}

func (c *Client) headersFor(sess *session.Session) map[string]string {
	switch c.authMode {
	case AuthModePublicToken:
		if pt := sess.PublicToken(); pt != "" {
			return map[string]string{PublicTokenHeader: pt}
		}
	default:
		if sess.AccessToken != "" {
			return map[string]string{transport.HeaderAuthorization: "Bearer " + sess.AccessToken}
		}
	}
	return nil
}

// Call issues a request against the service origin. Without explicit headers
// the session's authentication header is attached.
func (c *Client) Call(ctx context.Context, method, path string, p transport.Params) (*http.Response, error) {
	return c.http.Call(ctx, method, path, p)
}

// CallJSON is Call followed by decoding the JSON response body into out.
func (c *Client) CallJSON(ctx context.Context, method, path string, p transport.Params, out any) error {
	return c.http.CallJSON(ctx, method, path, p, out)
}

// Stash returns the app's key/value stash.
func (c *Client) Stash() *stash.Stash {
	return stash.New(c)
}

// UserSetting returns the signed-in user's settings.
func (c *Client) UserSetting() *usersetting.UserSetting {
	return usersetting.New(c)
}
