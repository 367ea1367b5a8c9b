package config

import "time"

const (
	originVar        = "TRANSPOSIT_ORIGIN"
	clientIDVar      = "TRANSPOSIT_CLIENT_ID"
	scopeVar         = "TRANSPOSIT_SCOPE"
	authModeVar      = "TRANSPOSIT_AUTH_MODE"
	logoutTimeoutVar = "TRANSPOSIT_LOGOUT_TIMEOUT"
)

type SDKConfig interface {
	GetOrigin() string
	GetClientID() string
	GetScope() string
	GetAuthMode() string
	GetLogoutTimeout() time.Duration
}

type SDK struct{}

var _ SDKConfig = SDK{}

// GetOrigin returns the hosted app origin, e.g. "https://myapp.transposit.io".
func (SDK) GetOrigin() string {
	return GetEnv(originVar, "")
}

func (SDK) GetClientID() string {
	return GetEnv(clientIDVar, "sdk")
}

func (SDK) GetScope() string {
	return GetEnv(scopeVar, "openid app")
}

// GetAuthMode is "bearer" or "public_token".
func (SDK) GetAuthMode() string {
	return GetEnv(authModeVar, "bearer")
}

func (SDK) GetLogoutTimeout() time.Duration {
	d, err := time.ParseDuration(GetEnv(logoutTimeoutVar, "5s"))
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}
