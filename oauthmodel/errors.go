package oauthmodel

import "errors"

var (
	ErrInvalidCodeChallenge       = errors.New("invalid code challenge")
	ErrInvalidCodeChallengeMethod = errors.New("invalid code challenge method")
	ErrInvalidCodeVerifier        = errors.New("invalid code verifier")
	ErrInvalidRedirectUri         = errors.New("invalid or no redirect uri")
	ErrInvalidClientID            = errors.New("invalid or no client id")
	ErrInvalidProvider            = errors.New("unsupported identity provider")
	ErrMissingCode                = errors.New("authorization code is required")
	ErrMissingAccessToken         = errors.New("token response has no access_token")
)
