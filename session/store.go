package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jrsteele09/go-transposit-sdk/oauthmodel"
	"github.com/jrsteele09/go-transposit-sdk/storage"
	"github.com/jrsteele09/go-transposit-sdk/token"
)

const (
	// AccessTokenKey is kept distinct from the hosted settings page session.
	AccessTokenKey = "TRANSPOSIT_ACCESS_TOKEN"
	UserKey        = "TRANSPOSIT_USER"
)

// Store reads and writes the single persisted session.
type Store struct {
	store storage.Store
	mode  Mode
}

// NewStore returns a session store persisting into store.
func NewStore(store storage.Store, mode Mode) *Store {
	return &Store{
		store: store,
		mode:  mode,
	}
}

// Mode returns what this store persists.
func (s *Store) Mode() Mode {
	return s.mode
}

// Persist stores sess, overwriting any previous session.
func (s *Store) Persist(sess *Session) error {
	if sess == nil || sess.Claims == nil {
		return ErrInvalidSession
	}

	var value string
	switch s.mode {
	case ModeAccessToken:
		if sess.AccessToken == "" {
			return fmt.Errorf("%w: access token is empty", ErrInvalidSession)
		}
		value = sess.AccessToken
	case ModeClaims:
		blob, err := sess.Claims.JSON()
		if err != nil {
			return err
		}
		value = blob
	default:
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidSession, s.mode)
	}

	if err := s.store.Set(AccessTokenKey, value); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Load returns the persisted session. When nothing usable is stored the error
// wraps ErrNoSession; the stored value itself is left untouched.
func (s *Store) Load() (*Session, error) {
	value, err := s.store.Get(AccessTokenKey)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && value == "") {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	now := token.NowTimeFunc()
	switch s.mode {
	case ModeClaims:
		claims, err := token.DecodeJSON(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoSession, err)
		}
		if !token.IsValid(claims, now) {
			return nil, fmt.Errorf("%w: %w", ErrNoSession, token.ErrTokenExpired)
		}
		return &Session{Claims: claims}, nil
	default:
		claims, err := token.Parse(value, now)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoSession, err)
		}
		return &Session{AccessToken: value, Claims: claims}, nil
	}
}

// Clear removes the session and the cached user. Safe to call when nothing
// is stored.
func (s *Store) Clear() error {
	if err := s.store.Remove(AccessTokenKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return s.ClearUser()
}

// ClearUser removes only the cached user profile.
func (s *Store) ClearUser() error {
	if err := s.store.Remove(UserKey); err != nil {
		return fmt.Errorf("failed to clear user: %w", err)
	}
	return nil
}

// PersistUser caches the signed-in user's profile.
func (s *Store) PersistUser(user *oauthmodel.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.store.Set(UserKey, string(b)); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}
	return nil
}

// LoadUser returns the cached profile. Anything without a string name and
// email is treated as absent.
func (s *Store) LoadUser() (*oauthmodel.User, bool) {
	value, err := s.store.Get(UserKey)
	if err != nil || value == "" {
		return nil, false
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(value), &fields); err != nil {
		return nil, false
	}
	name, nameOK := fields["name"].(string)
	email, emailOK := fields["email"].(string)
	if !nameOK || !emailOK {
		return nil, false
	}
	return &oauthmodel.User{Name: name, Email: email}, true
}
