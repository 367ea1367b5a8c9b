package browserfake

import (
	"net/url"
	"sync"

	"github.com/jrsteele09/go-transposit-sdk/browser"
)

var _ browser.Browser = (*FakeBrowser)(nil)

// FakeBrowser records navigations instead of performing them.
type FakeBrowser struct {
	lock        sync.RWMutex
	location    *url.URL
	navigations []string
	NavigateErr error
}

// NewFakeBrowser returns a browser sitting on location.
func NewFakeBrowser(location string) *FakeBrowser {
	b := &FakeBrowser{}
	b.SetLocation(location)
	return b
}

func (b *FakeBrowser) Navigate(rawURL string) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.NavigateErr != nil {
		return b.NavigateErr
	}
	b.navigations = append(b.navigations, rawURL)
	return nil
}

func (b *FakeBrowser) Location() (*url.URL, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if b.location == nil {
		return nil, browser.ErrNoLocation
	}
	u := *b.location
	return &u, nil
}

// SetLocation simulates the browser arriving at rawURL. It panics on an
// unparsable URL since only tests use it.
func (b *FakeBrowser) SetLocation(rawURL string) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if rawURL == "" {
		b.location = nil
		return
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		panic(err)
	}
	b.location = u
}

// Navigations returns every URL navigated to, oldest first.
func (b *FakeBrowser) Navigations() []string {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return append([]string(nil), b.navigations...)
}

// LastNavigation returns the most recent navigation, or "".
func (b *FakeBrowser) LastNavigation() string {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if len(b.navigations) == 0 {
		return ""
	}
	return b.navigations[len(b.navigations)-1]
}
