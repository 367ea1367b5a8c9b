// Package browser abstracts the two things the SDK needs from a web browser:
// sending the user somewhere, and knowing which URL the user is on.
package browser

import (
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/skratchdot/open-golang/open"
)

var ErrNoLocation = errors.New("current location is not known")

// Browser is the navigation collaborator of the SDK client.
type Browser interface {
	// Navigate sends the user to rawURL. For a page this supersedes the
	// caller; for a native application it opens the system browser.
	Navigate(rawURL string) error

	// Location returns the URL the user is currently on, which after a
	// sign-in redirect carries the ?code= query parameter.
	Location() (*url.URL, error)
}

// System opens URLs in the operating system's default browser. Its location
// is whatever the application last observed, typically the redirect a local
// callback listener received.
type System struct {
	mu       sync.RWMutex
	location *url.URL
	open     func(string) error
}

// NewSystem returns a System browser with no known location.
func NewSystem() *System {
	return &System{open: open.Run}
}

func (s *System) Navigate(rawURL string) error {
	if err := s.open(rawURL); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

func (s *System) Location() (*url.URL, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.location == nil {
		return nil, ErrNoLocation
	}
	u := *s.location
	return &u, nil
}

// SetLocation records the URL the user arrived at.
func (s *System) SetLocation(u *url.URL) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		s.location = nil
		return
	}
	copied := *u
	s.location = &copied
}

// WithoutQuery returns u without its query string and fragment.
func WithoutQuery(u *url.URL) string {
	stripped := *u
	stripped.RawQuery = ""
	stripped.ForceQuery = false
	stripped.Fragment = ""
	stripped.RawFragment = ""
	return stripped.String()
}
