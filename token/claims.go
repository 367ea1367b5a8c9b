package token

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Claims is the decoded payload segment of a Transposit access token.
// Only iss, sub, exp and iat are always present, the profile fields are
// set by the hosted login for the public-token auth style.
type Claims struct {
	jwtlib.RegisteredClaims

	PublicToken string `json:"publicToken,omitempty"` // Token sent in the public token header
	Repository  string `json:"repository,omitempty"`  // owner/name of the hosted app
	Email       string `json:"email,omitempty"`
	Name        string `json:"name,omitempty"`
}

var _ jwtlib.Claims = (*Claims)(nil)

// ExpiresAtTime returns the expiry as a time.Time, zero when the claim is missing.
func (c *Claims) ExpiresAtTime() time.Time {
	if c == nil || c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// JSON encodes the claims as the blob persisted by the claims session mode.
func (c *Claims) JSON() (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode claims: %w", err)
	}
	return string(b), nil
}

// Decode extracts the claims from the middle segment of a three part token.
// The signature is not verified, the hosted backend does that on every call.
func Decode(rawToken string) (*Claims, error) {
	segments := strings.Split(rawToken, ".")
	if len(segments) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, found %d", ErrMalformedToken, len(segments))
	}

	payload, err := decodeSegment(segments[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload is not base64: %v", ErrMalformedToken, err)
	}

	return DecodeJSON(string(payload))
}

// DecodeJSON parses a claims blob that was stored as plain JSON.
func DecodeJSON(blob string) (*Claims, error) {
	var claims Claims
	if err := json.Unmarshal([]byte(blob), &claims); err != nil {
		return nil, fmt.Errorf("%w: payload is not JSON: %v", ErrMalformedToken, err)
	}
	return &claims, nil
}

// IsValid reports whether the claims expire strictly after now. The
// comparison is made in milliseconds, so a token expiring at exactly now is
// already expired.
func IsValid(claims *Claims, now time.Time) bool {
	if claims == nil || claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Time.UnixMilli() > now.UnixMilli()
}

// Parse decodes rawToken and checks its expiry against now. It fails with
// ErrMalformedToken or ErrTokenExpired.
func Parse(rawToken string, now time.Time) (*Claims, error) {
	claims, err := Decode(rawToken)
	if err != nil {
		return nil, err
	}
	if !IsValid(claims, now) {
		return claims, fmt.Errorf("%w: expired at %s", ErrTokenExpired, claims.ExpiresAtTime().UTC().Format(time.RFC3339))
	}
	return claims, nil
}

// decodeSegment accepts the URL-safe alphabet JWTs use as well as the
// standard one, padded or not.
func decodeSegment(seg string) ([]byte, error) {
	if seg == "" {
		return nil, fmt.Errorf("empty segment")
	}

	parser := jwtlib.NewParser(jwtlib.WithPaddingAllowed())
	if b, err := parser.DecodeSegment(seg); err == nil {
		return b, nil
	}

	return base64.RawStdEncoding.DecodeString(strings.TrimRight(seg, "="))
}
