package oauthmodel

import (
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

// AuthorizationParameters holds the query parameters the SDK sends to the
// hosted /login/authorize endpoint when it starts a sign-in.
type AuthorizationParameters struct {
	// ClientID identifies the SDK to the hosted login.
	// Required: Yes
	// Example: "sdk"
	ClientID string

	// RedirectURI is where the hosted login sends the browser back to with ?code=.
	// Required: Yes
	// Example: "https://app.example/cb"
	// Must be an absolute URL, the same value is repeated at the token endpoint.
	RedirectURI string

	// Scope specifies the permissions being requested.
	// Example: "openid app"
	Scope string

	// Prompt is always "login" for the SDK.
	Prompt PromptType

	// CodeChallenge is the PKCE challenge derived from the pending code_verifier.
	// Length: 43 characters for S256
	CodeChallenge string

	// CodeChallengeMethod specifies how CodeChallenge was derived.
	CodeChallengeMethod CodeMethodType

	// Provider skips the provider selection screen of the hosted login.
	// Required: No
	Provider Provider
}

// Validate checks the parameters before a browser is sent anywhere with them.
func (p *AuthorizationParameters) Validate() error {
	if strings.TrimSpace(p.ClientID) == "" {
		return ErrInvalidClientID
	}
	if !absoluteURL(p.RedirectURI) {
		return ErrInvalidRedirectUri
	}
	if len(p.CodeChallenge) < 43 || len(p.CodeChallenge) > 128 {
		return ErrInvalidCodeChallenge
	}
	if p.CodeChallengeMethod != CodeMethodTypeS256 {
		return ErrInvalidCodeChallengeMethod
	}
	if !p.Provider.Valid() {
		return ErrInvalidProvider
	}
	return nil
}

// Config returns the oauth2.Config the authorization URL is built from.
func (p *AuthorizationParameters) Config(authorizeURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:    p.ClientID,
		RedirectURL: p.RedirectURI,
		Scopes:      strings.Fields(p.Scope),
		Endpoint: oauth2.Endpoint{
			AuthURL: authorizeURL,
		},
	}
}

// AuthCodeOptions returns the parameters oauth2.Config does not set itself.
func (p *AuthorizationParameters) AuthCodeOptions() []oauth2.AuthCodeOption {
	opts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("code_challenge", p.CodeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", string(p.CodeChallengeMethod)),
	}
	if p.Prompt != "" {
		opts = append(opts, oauth2.SetAuthURLParam("prompt", string(p.Prompt)))
	}
	if p.Provider != DefaultProvider {
		opts = append(opts, oauth2.SetAuthURLParam("provider", string(p.Provider)))
	}
	return opts
}

// AuthCodeURL validates the parameters and renders the full authorization URL.
func (p *AuthorizationParameters) AuthCodeURL(authorizeURL string) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	// The hosted login does not use the state parameter; PKCE binds the code.
	return p.Config(authorizeURL).AuthCodeURL("", p.AuthCodeOptions()...), nil
}

func absoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
