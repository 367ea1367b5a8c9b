// Package session persists the signed-in state of an SDK client: exactly one
// session under one fixed storage key, plus a cached user profile.
package session

import (
	"errors"
	"time"

	"github.com/jrsteele09/go-transposit-sdk/token"
)

// Mode selects what is persisted for a session.
type Mode int

const (
	// ModeAccessToken persists the raw access token. Calls authenticate with
	// "Authorization: Bearer <token>".
	ModeAccessToken Mode = iota

	// ModeClaims persists the decoded claims as JSON. Calls authenticate with
	// the publicToken claim in a custom header.
	ModeClaims
)

func (m Mode) String() string {
	switch m {
	case ModeAccessToken:
		return "access_token"
	case ModeClaims:
		return "claims"
	}
	return "unknown"
}

var (
	// ErrNoSession is returned by Store.Load whenever no usable session is
	// persisted. Malformed and expired values also wrap the token error that
	// explains why.
	ErrNoSession = errors.New("no session")

	ErrInvalidSession = errors.New("invalid session")
)

// Session is the client's record of being authenticated.
type Session struct {
	// AccessToken is the raw token. Empty for sessions loaded in ModeClaims.
	AccessToken string

	// Claims is the decoded payload of AccessToken.
	Claims *token.Claims
}

// New decodes accessToken into a Session.
func New(accessToken string) (*Session, error) {
	claims, err := token.Decode(accessToken)
	if err != nil {
		return nil, err
	}
	return &Session{AccessToken: accessToken, Claims: claims}, nil
}

// Valid reports whether the session is unexpired at now.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && token.IsValid(s.Claims, now)
}

// PublicToken returns the token sent in the public token header.
func (s *Session) PublicToken() string {
	if s == nil || s.Claims == nil {
		return ""
	}
	return s.Claims.PublicToken
}
