package config

import (
	"fmt"
	"time"
)

const callbackPortVar = "CALLBACK_PORT"

// CallbackConfig describes the local listener the CLI receives the sign-in
// redirect on.
type CallbackConfig interface {
	GetCallbackPort() string
	GetCallbackPath() string
	GetCallbackTimeout() time.Duration
	GetRedirectURI() string
}

type Callback struct{}

var _ CallbackConfig = Callback{}

func (Callback) GetCallbackPort() string {
	return GetEnv(callbackPortVar, "8765")
}

func (Callback) GetCallbackPath() string {
	return "/callback"
}

func (Callback) GetCallbackTimeout() time.Duration {
	return 5 * time.Minute
}

func (c Callback) GetRedirectURI() string {
	return fmt.Sprintf("http://localhost:%s%s", c.GetCallbackPort(), c.GetCallbackPath())
}
