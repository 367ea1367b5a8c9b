package oauthmodel

// ResponseType represents the OAuth 2.0 response type requested from the
// hosted authorization endpoint.
type ResponseType string

const (
	// CodeResponseType indicates the authorization code flow.
	// The hosted login redirects back with ?code=... which the SDK exchanges
	// at the token endpoint together with the PKCE verifier.
	CodeResponseType ResponseType = "code"
)

// CodeMethodType represents the PKCE (Proof Key for Code Exchange) challenge method.
type CodeMethodType string

const (
	// CodeMethodTypeS256 indicates SHA-256 hashing is used for the code challenge.
	// Client sends: code_challenge = BASE64URL(SHA256(code_verifier))
	// This is the only method the SDK ever sends.
	CodeMethodTypeS256 CodeMethodType = "S256"
)

// GrantType represents the OAuth 2.0 grant type used at the token endpoint.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for an access token.
	// Token request includes: code, redirect_uri, code_verifier
	AuthorizationCodeGrant GrantType = "authorization_code"
)

// PromptType controls whether the hosted login may reuse an existing session.
type PromptType string

const (
	// LoginPrompt forces the hosted login page, even when a settings page
	// session already exists on the service origin.
	LoginPrompt PromptType = "login"
)

// Provider selects the identity provider the hosted login should go straight to.
type Provider string

const (
	// DefaultProvider lets the hosted login show its own provider selection.
	DefaultProvider Provider = ""
	GoogleProvider  Provider = "google"
	SlackProvider   Provider = "slack"
)

// Valid reports whether p is one of the providers the hosted login accepts.
func (p Provider) Valid() bool {
	switch p {
	case DefaultProvider, GoogleProvider, SlackProvider:
		return true
	}
	return false
}
