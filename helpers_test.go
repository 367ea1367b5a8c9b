package transposit_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	transposit "github.com/jrsteele09/go-transposit-sdk"
	"github.com/jrsteele09/go-transposit-sdk/browser/browserfake"
	"github.com/jrsteele09/go-transposit-sdk/storage"
	"github.com/jrsteele09/go-transposit-sdk/token"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	testOrigin        = "https://svc.example"
	testRedirectURI   = "https://app.example/cb"
	testCodeVerifier  = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	testCodeChallenge = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
	testPublicToken   = "thisisapublictoken"
)

var (
	now          = time.UnixMilli(1522255319000)
	threeDaysAgo = time.UnixMilli(1521996119000)
	inThreeDays  = time.UnixMilli(1522514519000)
)

func setNow(t *testing.T, at time.Time) {
	t.Helper()
	previous := token.NowTimeFunc
	token.NowTimeFunc = func() time.Time { return at }
	t.Cleanup(func() { token.NowTimeFunc = previous })
}

func accessToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := &token.Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    "https://api.transposit.com",
			Subject:   "jplace@transposit.com",
			ExpiresAt: jwtlib.NewNumericDate(exp),
			IssuedAt:  jwtlib.NewNumericDate(threeDaysAgo),
		},
		PublicToken: testPublicToken,
		Email:       "jplace@transposit.com",
		Name:        "Jordan Place",
	}
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return raw
}

type recordedRequest struct {
	Method  string
	Path    string
	Query   url.Values
	Headers http.Header
	Body    string
}

type cannedResponse struct {
	status int
	body   string
}

// fakeBackend answers canned responses per "METHOD /path" and records every
// request it receives.
type fakeBackend struct {
	mu        sync.Mutex
	responses map[string]cannedResponse
	requests  []recordedRequest
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{responses: map[string]cannedResponse{}}
}

func (f *fakeBackend) respond(method, path string, status int, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var s string
	switch b := body.(type) {
	case string:
		s = b
	default:
		raw, _ := json.Marshal(b)
		s = string(raw)
	}
	f.responses[method+" "+path] = cannedResponse{status: status, body: s}
}

func (f *fakeBackend) all() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeBackend) last(t *testing.T) recordedRequest {
	t.Helper()
	all := f.all()
	require.NotEmpty(t, all)
	return all[len(all)-1]
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method:  r.Method,
		Path:    r.URL.Path,
		Query:   r.URL.Query(),
		Headers: r.Header.Clone(),
		Body:    string(b),
	})
	resp, ok := f.responses[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

// RoundTrip serves requests for any origin in-process.
func (f *fakeBackend) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body == nil {
		req.Body = http.NoBody
	}
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)
	resp := rec.Result()
	resp.Request = req
	return resp, nil
}

type fixture struct {
	client  *transposit.Client
	backend *fakeBackend
	browser *browserfake.FakeBrowser
	store   *storage.InMemoryStore
}

func newFixture(t *testing.T, opts ...transposit.Option) *fixture {
	t.Helper()
	f := &fixture{
		backend: newFakeBackend(),
		browser: browserfake.NewFakeBrowser("https://app.example/"),
		store:   storage.NewInMemoryStore(),
	}
	f.client = f.newClient(t, opts...)
	return f
}

// newClient returns another client sharing the fixture's backend, browser and storage.
func (f *fixture) newClient(t *testing.T, opts ...transposit.Option) *transposit.Client {
	t.Helper()
	base := []transposit.Option{
		transposit.WithStore(f.store),
		transposit.WithBrowser(f.browser),
		transposit.WithHTTPClient(&http.Client{Transport: f.backend}),
		transposit.WithLogger(zerolog.Nop()),
		transposit.WithVerifierGenerator(func() string { return testCodeVerifier }),
	}
	c, err := transposit.New(testOrigin, append(base, opts...)...)
	require.NoError(t, err)
	return c
}

// signIn runs a complete sign-in against the fake backend.
func (f *fixture) signIn(t *testing.T, tokenResponse map[string]any) {
	t.Helper()
	f.backend.respond(http.MethodPost, transposit.RouteToken, http.StatusOK, tokenResponse)
	require.NoError(t, f.client.BeginSignIn(testRedirectURI, ""))
	f.browser.SetLocation(testRedirectURI + "?code=abc123")
	_, err := f.client.CompleteSignIn(context.Background())
	require.NoError(t, err)
	require.True(t, f.client.IsSignedIn())
}
