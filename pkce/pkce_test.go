package pkce_test

import (
	"testing"

	"github.com/jrsteele09/go-transposit-sdk/pkce"
	"github.com/jrsteele09/go-transposit-sdk/storage"
	"github.com/stretchr/testify/require"
)

const (
	testCodeVerifier  = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	testCodeChallenge = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
)

func TestChallenge(t *testing.T) {
	// RFC 7636 Appendix B test vector
	require.Equal(t, testCodeChallenge, pkce.Challenge(testCodeVerifier))
}

func TestManager(t *testing.T) {
	t.Run("pop returns the pushed verifier once", func(t *testing.T) {
		store := storage.NewInMemoryStore()
		m := pkce.NewManager(store)

		challenge, err := m.Push()
		require.NoError(t, err)

		verifier, err := m.Pop()
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(verifier), 43)
		require.Equal(t, pkce.Challenge(verifier), challenge)

		_, err = m.Pop()
		require.ErrorIs(t, err, pkce.ErrStateMissing)
		require.EqualError(t, err, "PKCE state could not be found.")
	})

	t.Run("pop without push", func(t *testing.T) {
		_, err := pkce.NewManager(storage.NewInMemoryStore()).Pop()
		require.ErrorIs(t, err, pkce.ErrStateMissing)
	})

	t.Run("push overwrites the pending verifier", func(t *testing.T) {
		verifiers := []string{testCodeVerifier, "a-second-verifier-that-is-long-enough-for-rfc-7636"}
		next := 0
		m := pkce.NewManager(storage.NewInMemoryStore(), pkce.WithGenerator(func() string {
			v := verifiers[next]
			next++
			return v
		}))

		challenge, err := m.Push()
		require.NoError(t, err)
		require.Equal(t, testCodeChallenge, challenge)
		_, err = m.Push()
		require.NoError(t, err)

		verifier, err := m.Pop()
		require.NoError(t, err)
		require.Equal(t, verifiers[1], verifier)
	})

	t.Run("generated verifiers differ", func(t *testing.T) {
		m := pkce.NewManager(storage.NewInMemoryStore())
		first, err := m.Push()
		require.NoError(t, err)
		second, err := m.Push()
		require.NoError(t, err)
		require.NotEqual(t, first, second)
	})

	t.Run("short verifier rejected", func(t *testing.T) {
		store := storage.NewInMemoryStore()
		m := pkce.NewManager(store, pkce.WithGenerator(func() string { return "short" }))
		_, err := m.Push()
		require.Error(t, err)
		_, err = store.Get(pkce.VerifierKey)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("managers on separate stores do not interfere", func(t *testing.T) {
		a := pkce.NewManager(storage.NewInMemoryStore())
		b := pkce.NewManager(storage.NewInMemoryStore())
		_, err := a.Push()
		require.NoError(t, err)

		_, err = b.Pop()
		require.ErrorIs(t, err, pkce.ErrStateMissing)
		_, err = a.Pop()
		require.NoError(t, err)
	})
}
