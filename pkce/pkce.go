// Package pkce keeps the single pending PKCE code verifier between starting a
// sign-in and completing it after the redirect back.
//
// Only one sign-in may be in flight per storage area: Push overwrites any
// pending verifier. Two processes sharing a storage area can therefore clobber
// each other's verifier between Push and Pop; this is not guarded against.
package pkce

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-transposit-sdk/storage"
	"golang.org/x/oauth2"
)

// VerifierKey keeps the spelling older SDK builds wrote, so a verifier pushed
// by one of them can still be popped.
const VerifierKey = "TRANPOSIT_PKCE"

// minVerifierLength is the RFC 7636 lower bound.
const minVerifierLength = 43

var ErrStateMissing = errors.New("PKCE state could not be found.")

// Manager pushes and pops the pending code verifier.
type Manager struct {
	store    storage.Store
	generate func() string
}

// Option configures a Manager.
type Option func(*Manager)

// WithGenerator replaces the verifier generator, mainly for tests.
func WithGenerator(generate func() string) Option {
	return func(m *Manager) {
		m.generate = generate
	}
}

// NewManager creates a manager persisting into store.
func NewManager(store storage.Store, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		generate: oauth2.GenerateVerifier,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Push generates and stores a new verifier and returns its S256 challenge.
func (m *Manager) Push() (string, error) {
	verifier := m.generate()
	if len(strings.TrimSpace(verifier)) < minVerifierLength {
		return "", fmt.Errorf("code verifier must be at least %d characters", minVerifierLength)
	}
	if err := m.store.Set(VerifierKey, verifier); err != nil {
		return "", fmt.Errorf("failed to store code verifier: %w", err)
	}
	return Challenge(verifier), nil
}

// Pop returns the pending verifier and removes it. A second Pop without an
// intervening Push fails with ErrStateMissing.
func (m *Manager) Pop() (string, error) {
	verifier, err := m.store.Get(VerifierKey)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && verifier == "") {
		return "", ErrStateMissing
	}
	if err != nil {
		return "", fmt.Errorf("failed to read code verifier: %w", err)
	}
	if err := m.store.Remove(VerifierKey); err != nil {
		return "", fmt.Errorf("failed to remove code verifier: %w", err)
	}
	return verifier, nil
}

// Challenge returns BASE64URL(SHA256(verifier)).
func Challenge(verifier string) string {
	return oauth2.S256ChallengeFromVerifier(verifier)
}
