package oauthmodel_test

import (
	"net/url"
	"testing"

	"github.com/jrsteele09/go-transposit-sdk/oauthmodel"
	"github.com/stretchr/testify/require"
)

const (
	testCodeChallenge = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
	testCodeVerifier  = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	testRedirectURI   = "https://app.example/cb"
)

func validParameters() *oauthmodel.AuthorizationParameters {
	return &oauthmodel.AuthorizationParameters{
		ClientID:            "sdk",
		RedirectURI:         testRedirectURI,
		Scope:               "openid app",
		Prompt:              oauthmodel.LoginPrompt,
		CodeChallenge:       testCodeChallenge,
		CodeChallengeMethod: oauthmodel.CodeMethodTypeS256,
	}
}

func TestAuthorizationParameters_AuthCodeURL(t *testing.T) {
	t.Run("all parameters", func(t *testing.T) {
		params := validParameters()
		params.Provider = oauthmodel.SlackProvider

		raw, err := params.AuthCodeURL("https://svc.example/login/authorize")
		require.NoError(t, err)

		u, err := url.Parse(raw)
		require.NoError(t, err)
		require.Equal(t, "svc.example", u.Host)
		require.Equal(t, "/login/authorize", u.Path)

		q := u.Query()
		require.Equal(t, "openid app", q.Get("scope"))
		require.Equal(t, "code", q.Get("response_type"))
		require.Equal(t, "sdk", q.Get("client_id"))
		require.Equal(t, testRedirectURI, q.Get("redirect_uri"))
		require.Equal(t, "login", q.Get("prompt"))
		require.Equal(t, testCodeChallenge, q.Get("code_challenge"))
		require.Equal(t, "S256", q.Get("code_challenge_method"))
		require.Equal(t, "slack", q.Get("provider"))
		require.False(t, q.Has("state"))
	})

	t.Run("no provider", func(t *testing.T) {
		raw, err := validParameters().AuthCodeURL("https://svc.example/login/authorize")
		require.NoError(t, err)
		u, err := url.Parse(raw)
		require.NoError(t, err)
		require.False(t, u.Query().Has("provider"))
	})
}

func TestAuthorizationParameters_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *oauthmodel.AuthorizationParameters)
		want   error
	}{
		{"valid", func(p *oauthmodel.AuthorizationParameters) {}, nil},
		{"missing client", func(p *oauthmodel.AuthorizationParameters) { p.ClientID = "" }, oauthmodel.ErrInvalidClientID},
		{"relative redirect", func(p *oauthmodel.AuthorizationParameters) { p.RedirectURI = "/cb" }, oauthmodel.ErrInvalidRedirectUri},
		{"short challenge", func(p *oauthmodel.AuthorizationParameters) { p.CodeChallenge = "tooshort" }, oauthmodel.ErrInvalidCodeChallenge},
		{"plain method", func(p *oauthmodel.AuthorizationParameters) { p.CodeChallengeMethod = "plain" }, oauthmodel.ErrInvalidCodeChallengeMethod},
		{"unknown provider", func(p *oauthmodel.AuthorizationParameters) { p.Provider = "myspace" }, oauthmodel.ErrInvalidProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParameters()
			tt.mutate(params)
			err := params.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTokenRequest(t *testing.T) {
	t.Run("form", func(t *testing.T) {
		req := oauthmodel.NewAuthorizationCodeRequest("abc123", testRedirectURI, testCodeVerifier)
		require.NoError(t, req.Validate())

		form := req.Form()
		require.Equal(t, "authorization_code", form.Get("grant_type"))
		require.Equal(t, "abc123", form.Get("code"))
		require.Equal(t, testRedirectURI, form.Get("redirect_uri"))
		require.Equal(t, testCodeVerifier, form.Get("code_verifier"))
	})

	t.Run("missing code", func(t *testing.T) {
		err := oauthmodel.NewAuthorizationCodeRequest("", testRedirectURI, testCodeVerifier).Validate()
		require.ErrorIs(t, err, oauthmodel.ErrMissingCode)
	})

	t.Run("missing verifier", func(t *testing.T) {
		err := oauthmodel.NewAuthorizationCodeRequest("abc123", testRedirectURI, "").Validate()
		require.ErrorIs(t, err, oauthmodel.ErrInvalidCodeVerifier)
	})
}
