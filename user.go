package transposit

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-transposit-sdk/oauthmodel"
	"github.com/jrsteele09/go-transposit-sdk/transport"
)

// CurrentUser returns the signed-in user's profile, fetching it from the
// service only when it is not already cached.
func (c *Client) CurrentUser(ctx context.Context) (*oauthmodel.User, error) {
	if !c.IsSignedIn() {
		return nil, ErrNotSignedIn
	}

	c.mu.RLock()
	cached := c.user
	c.mu.RUnlock()
	if cached != nil {
		u := *cached
		return &u, nil
	}

	if u, ok := c.sessions.LoadUser(); ok {
		c.setUser(u)
		return u, nil
	}

	var u oauthmodel.User
	if err := c.http.CallJSON(ctx, http.MethodGet, RouteUser, transport.Params{}, &u); err != nil {
		return nil, err
	}
	if err := c.sessions.PersistUser(&u); err != nil {
		c.logger.Warn().Err(err).Msg("failed to cache user")
	}
	c.setUser(&u)
	return &u, nil
}

func (c *Client) setUser(u *oauthmodel.User) {
	copied := *u
	c.mu.Lock()
	c.user = &copied
	c.mu.Unlock()
}
