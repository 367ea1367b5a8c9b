package oauthmodel

import (
	"fmt"
	"net/url"
	"strings"
)

// TokenRequest holds parameters for the code-for-token exchange.
// This represents the form-encoded body sent to /login/authorize/token.
type TokenRequest struct {
	// GrantType is always authorization_code for the SDK.
	GrantType GrantType

	// Code is the authorization code received on the redirect back.
	// Required: Yes
	// Usage: Exchanged once for a token, then becomes invalid
	Code string

	// RedirectURI must equal the redirect_uri of the authorization request.
	// Required: Yes
	RedirectURI string

	// CodeVerifier is the PKCE code verifier that matches the code_challenge.
	// Required: Yes
	// Validation: Server compares SHA256(code_verifier) with stored code_challenge
	CodeVerifier string
}

// NewAuthorizationCodeRequest builds the exchange request for code.
func NewAuthorizationCodeRequest(code, redirectURI, codeVerifier string) *TokenRequest {
	return &TokenRequest{
		GrantType:    AuthorizationCodeGrant,
		Code:         code,
		RedirectURI:  redirectURI,
		CodeVerifier: codeVerifier,
	}
}

// Validate checks the request before it is sent.
func (r *TokenRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return ErrMissingCode
	}
	if strings.TrimSpace(r.RedirectURI) == "" {
		return ErrInvalidRedirectUri
	}
	if strings.TrimSpace(r.CodeVerifier) == "" {
		return fmt.Errorf("%w: code_verifier is required", ErrInvalidCodeVerifier)
	}
	return nil
}

// Form returns the request as form values.
func (r *TokenRequest) Form() url.Values {
	return url.Values{
		"grant_type":    {string(r.GrantType)},
		"code":          {r.Code},
		"redirect_uri":  {r.RedirectURI},
		"code_verifier": {r.CodeVerifier},
	}
}
