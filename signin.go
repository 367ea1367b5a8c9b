package transposit

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-transposit-sdk/browser"
	"github.com/jrsteele09/go-transposit-sdk/oauthmodel"
	"github.com/jrsteele09/go-transposit-sdk/session"
	"github.com/jrsteele09/go-transposit-sdk/token"
	"github.com/jrsteele09/go-transposit-sdk/transport"
)

// SignInResult is returned by a completed sign-in.
type SignInResult struct {
	// NeedsKeys is true when the user must still connect accounts in the
	// settings page before the app's operations can run.
	NeedsKeys bool
}

// SignInURL pushes a new PKCE verifier and returns the hosted login URL that
// redirects back to redirectURI. Any sign-in already in progress in the same
// storage area is abandoned.
func (c *Client) SignInURL(redirectURI string, provider oauthmodel.Provider) (string, error) {
	challenge, err := c.pkce.Push()
	if err != nil {
		return "", err
	}

	params := &oauthmodel.AuthorizationParameters{
		ClientID:            c.clientID,
		RedirectURI:         redirectURI,
		Scope:               c.scope,
		Prompt:              oauthmodel.LoginPrompt,
		CodeChallenge:       challenge,
		CodeChallengeMethod: oauthmodel.CodeMethodTypeS256,
		Provider:            provider,
	}
	return params.AuthCodeURL(c.http.Origin() + RouteAuthorize)
}

// BeginSignIn sends the browser to the hosted login. Provider may be
// oauthmodel.DefaultProvider to let the user choose.
func (c *Client) BeginSignIn(redirectURI string, provider oauthmodel.Provider) error {
	target, err := c.SignInURL(redirectURI, provider)
	if err != nil {
		return err
	}
	c.logger.Debug().Str("redirect_uri", redirectURI).Str("provider", string(provider)).Msg("beginning sign-in")
	return c.browser.Navigate(target)
}

// CompleteSignIn exchanges the ?code= of the browser's current location for
// an access token and persists the new session. It fails with ErrMissingCode
// before any network call when the location carries no code, and with
// pkce.ErrStateMissing when no sign-in was begun in this storage area.
func (c *Client) CompleteSignIn(ctx context.Context) (*SignInResult, error) {
	here, err := c.browser.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingCode, err)
	}
	code := here.Query().Get("code")
	if strings.TrimSpace(code) == "" {
		return nil, ErrMissingCode
	}

	verifier, err := c.pkce.Pop()
	if err != nil {
		return nil, err
	}

	req := oauthmodel.NewAuthorizationCodeRequest(code, browser.WithoutQuery(here), verifier)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp oauthmodel.TokenResponse
	err = c.http.CallJSON(ctx, http.MethodPost, RouteToken, transport.Params{
		Headers: map[string]string{transport.HeaderContentType: transport.ContentTypeForm},
		Body:    req.Form(),
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("sign-in code exchange failed: %w", err)
	}
	if err := resp.Validate(); err != nil {
		return nil, err
	}

	claims, err := token.Parse(resp.AccessToken, token.NowTimeFunc())
	if err != nil {
		return nil, fmt.Errorf("sign-in returned an unusable access token: %w", err)
	}
	sess := &session.Session{AccessToken: resp.AccessToken, Claims: claims}
	if err := c.sessions.Persist(sess); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.session = sess
	c.user = nil
	c.mu.Unlock()

	if resp.User != nil {
		if err := c.sessions.PersistUser(resp.User); err != nil {
			c.logger.Warn().Err(err).Msg("failed to cache signed-in user")
		}
		c.setUser(resp.User)
	} else if err := c.sessions.ClearUser(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to clear cached user")
	}

	c.logger.Info().
		Str("subject", sess.Claims.Subject).
		Bool("needs_keys", resp.NeedsKeys).
		Msg("signed in")

	return &SignInResult{NeedsKeys: resp.NeedsKeys}, nil
}

// SignOut forgets the session locally, asks the service to invalidate it,
// and sends the browser to the hosted logout which then redirects to
// redirectURI. Local state is cleared even when the service cannot be reached.
func (c *Client) SignOut(ctx context.Context, redirectURI string) error {
	c.mu.Lock()
	previous := c.session
	c.session = nil
	c.user = nil
	c.mu.Unlock()

	if err := c.sessions.Clear(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to clear persisted session")
	}

	if previous.Valid(token.NowTimeFunc()) {
		c.invalidate(ctx, previous)
	}

	target, err := c.http.URL(RouteLogout, map[string]string{"redirectUri": redirectURI})
	if err != nil {
		return err
	}
	c.logger.Info().Msg("signed out")
	return c.browser.Navigate(target)
}

// invalidate is the best-effort server side logout. Failures are logged only.
func (c *Client) invalidate(ctx context.Context, sess *session.Session) {
	headers := c.headersFor(sess)
	if headers == nil {
		return
	}
	headers[transport.HeaderContentType] = transport.ContentTypeJSON

	if c.logoutTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.logoutTimeout)
		defer cancel()
	}

	err := c.http.CallJSON(ctx, http.MethodPost, RouteAPILogout, transport.Params{Headers: headers}, nil)
	if err != nil {
		c.logger.Warn().Err(err).Msg("server-side logout failed")
	}
}

// SettingsURI returns the hosted settings page URL, where the user connects
// accounts. It redirects back to redirectURI, or to the current location when
// redirectURI is empty.
func (c *Client) SettingsURI(redirectURI string) (string, error) {
	if redirectURI == "" {
		here, err := c.browser.Location()
		if err != nil {
			return "", err
		}
		redirectURI = here.String()
	}
	return c.http.URL(RouteSettings, map[string]string{"redirectUri": redirectURI})
}
