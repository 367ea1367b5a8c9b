// Package stash reads and writes the app's shared key/value stash.
package stash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-transposit-sdk/transport"
)

const Path = "/api/v1/stash"

var ErrEmptyKey = errors.New("stash key cannot be empty")

// Caller issues calls against the service origin with the session's headers.
type Caller interface {
	CallJSON(ctx context.Context, method, path string, p transport.Params, out any) error
}

// Pair is one stored entry as listed by the service.
type Pair struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// Stash is the app's mutable key/value store.
type Stash struct {
	caller Caller
}

// New returns a stash calling through caller.
func New(caller Caller) *Stash {
	return &Stash{caller: caller}
}

// ListKeys returns every key in the stash.
func (s *Stash) ListKeys(ctx context.Context) ([]string, error) {
	var pairs []Pair
	if err := s.caller.CallJSON(ctx, http.MethodGet, Path, transport.Params{}, &pairs); err != nil {
		return nil, fmt.Errorf("failed to list stash keys: %w", err)
	}
	keys := make([]string, 0, len(pairs))
	for _, p := range pairs {
		keys = append(keys, p.Key)
	}
	return keys, nil
}

// Get decodes the value stored under key into out. It reports false, leaving
// out untouched, when the key is not stored.
func (s *Stash) Get(ctx context.Context, key string, out any) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	var pairs []Pair
	err := s.caller.CallJSON(ctx, http.MethodGet, Path, transport.Params{
		Query: map[string]string{"keyName": key},
	}, &pairs)
	if err != nil {
		return false, fmt.Errorf("failed to get stash key %q: %w", key, err)
	}
	if len(pairs) == 0 {
		return false, nil
	}
	if out == nil {
		return true, nil
	}
	if err := json.Unmarshal(pairs[0].Value, out); err != nil {
		return true, fmt.Errorf("failed to decode stash key %q: %w", key, err)
	}
	return true, nil
}

// Put stores value under key, replacing any previous value.
func (s *Stash) Put(ctx context.Context, key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}
	err := s.caller.CallJSON(ctx, http.MethodPost, Path, transport.Params{
		Body: map[string]any{"key": key, "value": value},
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to put stash key %q: %w", key, err)
	}
	return nil
}

// Remove deletes key from the stash.
func (s *Stash) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	err := s.caller.CallJSON(ctx, http.MethodDelete, Path, transport.Params{
		Query: map[string]string{"keyName": key},
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to remove stash key %q: %w", key, err)
	}
	return nil
}
