package transposit_test

import (
	"context"
	"net/http"
	"testing"

	transposit "github.com/jrsteele09/go-transposit-sdk"
	"github.com/jrsteele09/go-transposit-sdk/session"
	"github.com/jrsteele09/go-transposit-sdk/transport"
	"github.com/stretchr/testify/require"
)

func TestCurrentUser(t *testing.T) {
	setNow(t, now)
	ctx := context.Background()

	t.Run("signed out", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.client.CurrentUser(ctx)
		require.ErrorIs(t, err, transposit.ErrNotSignedIn)
		require.Empty(t, f.backend.all())
	})

	t.Run("fetched once then cached", func(t *testing.T) {
		f := newFixture(t)
		tok := accessToken(t, inThreeDays)
		f.signIn(t, map[string]any{"access_token": tok})
		f.backend.respond(http.MethodGet, transposit.RouteUser, http.StatusOK,
			`{"name":"Jordan Place","email":"jplace@transposit.com"}`)

		user, err := f.client.CurrentUser(ctx)
		require.NoError(t, err)
		require.Equal(t, "Jordan Place", user.Name)
		require.Equal(t, "jplace@transposit.com", user.Email)
		require.Equal(t, "Bearer "+tok, f.backend.last(t).Headers.Get("Authorization"))

		calls := len(f.backend.all())
		_, err = f.client.CurrentUser(ctx)
		require.NoError(t, err)
		require.Len(t, f.backend.all(), calls)

		stored, err := f.store.Get(session.UserKey)
		require.NoError(t, err)
		require.JSONEq(t, `{"name":"Jordan Place","email":"jplace@transposit.com"}`, stored)
	})

	t.Run("restored from storage", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, map[string]any{
			"access_token": accessToken(t, inThreeDays),
			"user":         map[string]string{"name": "Jordan Place", "email": "jplace@transposit.com"},
		})
		calls := len(f.backend.all())

		user, err := f.newClient(t).CurrentUser(ctx)
		require.NoError(t, err)
		require.Equal(t, "Jordan Place", user.Name)
		require.Len(t, f.backend.all(), calls)
	})

	t.Run("new sign-in drops a stale profile", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.Set(session.UserKey, `{"name":"Someone Else","email":"else@example.com"}`))
		f.signIn(t, map[string]any{"access_token": accessToken(t, inThreeDays)})
		f.backend.respond(http.MethodGet, transposit.RouteUser, http.StatusOK,
			`{"name":"Jordan Place","email":"jplace@transposit.com"}`)

		user, err := f.client.CurrentUser(ctx)
		require.NoError(t, err)
		require.Equal(t, "Jordan Place", user.Name)
	})

	t.Run("api error", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, map[string]any{"access_token": accessToken(t, inThreeDays)})
		f.backend.respond(http.MethodGet, transposit.RouteUser, http.StatusInternalServerError, "oops")

		_, err := f.client.CurrentUser(ctx)
		var apiErr *transport.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, transport.InternalErrorMessage, apiErr.Message)
	})
}

func TestCollaborators(t *testing.T) {
	setNow(t, now)
	ctx := context.Background()
	f := newFixture(t)
	tok := accessToken(t, inThreeDays)
	f.signIn(t, map[string]any{"access_token": tok})

	f.backend.respond(http.MethodPost, "/api/v1/stash", http.StatusOK, `{}`)
	require.NoError(t, f.client.Stash().Put(ctx, "counter", 1))
	sent := f.backend.last(t)
	require.Equal(t, "Bearer "+tok, sent.Headers.Get("Authorization"))
	require.JSONEq(t, `{"key":"counter","value":1}`, sent.Body)

	f.backend.respond(http.MethodGet, "/api/v1/user_setting/value", http.StatusOK, `"dark"`)
	var theme string
	require.NoError(t, f.client.UserSetting().Get(ctx, "theme", &theme))
	require.Equal(t, "dark", theme)
	require.Equal(t, "theme", f.backend.last(t).Query.Get("keyName"))
}
