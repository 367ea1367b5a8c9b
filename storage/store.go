// Package storage provides the persistent key/value area the SDK keeps its
// session token, cached user profile and pending PKCE verifier in. It plays
// the part localStorage plays for a browser application: one string value per
// fixed key, shared by everything that opens the same backing store.
package storage

import "errors"

var ErrNotFound = errors.New("key not found")

// Store is a flat string key/value area.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
}
