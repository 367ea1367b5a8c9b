// Package usersetting reads and writes settings scoped to the signed-in user.
package usersetting

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-transposit-sdk/transport"
)

const Path = "/api/v1/user_setting/value"

var ErrEmptyKey = errors.New("user setting key cannot be empty")

// Caller issues calls against the service origin with the session's headers.
type Caller interface {
	CallJSON(ctx context.Context, method, path string, p transport.Params, out any) error
}

type UserSetting struct {
	caller Caller
}

func New(caller Caller) *UserSetting {
	return &UserSetting{caller: caller}
}

// Get decodes the setting stored under key into out.
func (u *UserSetting) Get(ctx context.Context, key string, out any) error {
	if key == "" {
		return ErrEmptyKey
	}
	err := u.caller.CallJSON(ctx, http.MethodGet, Path, transport.Params{
		Query: map[string]string{"keyName": key},
	}, out)
	if err != nil {
		return fmt.Errorf("failed to get user setting %q: %w", key, err)
	}
	return nil
}

// Put stores value as the JSON body of the setting under key.
func (u *UserSetting) Put(ctx context.Context, key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}
	err := u.caller.CallJSON(ctx, http.MethodPost, Path, transport.Params{
		Query: map[string]string{"keyName": key},
		Body:  value,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to put user setting %q: %w", key, err)
	}
	return nil
}
