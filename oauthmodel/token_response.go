package oauthmodel

// TokenResponse is the JSON body returned by /login/authorize/token.
type TokenResponse struct {
	// AccessToken is the JWT sent as "Authorization: Bearer <access_token>".
	// Its payload carries iss, sub, exp and iat.
	AccessToken string `json:"access_token"`

	// NeedsKeys is true when the user still has to connect accounts for the
	// app before its operations can run.
	NeedsKeys bool `json:"needs_keys"`

	// User is the profile of the user that signed in. Older backends omit it.
	User *User `json:"user,omitempty"`
}

// Validate checks the fields the SDK depends on.
func (r *TokenResponse) Validate() error {
	if r.AccessToken == "" {
		return ErrMissingAccessToken
	}
	return nil
}

// User is the signed-in user's profile as returned by /api/v1/user.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
