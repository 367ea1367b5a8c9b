package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// callbackListener receives the hosted login's redirect back to localhost.
type callbackListener struct {
	addr     string
	server   *http.Server
	received chan *url.URL
}

func listenForCallback(addr, path string) (*callbackListener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("net.Listen %s: %w", addr, err)
	}

	cb := &callbackListener{addr: ln.Addr().String(), received: make(chan *url.URL, 1)}
	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		location := *r.URL
		location.Scheme = "http"
		location.Host = r.Host
		select {
		case cb.received <- &location:
		default:
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "Sign-in received. You can close this window.")
	})
	cb.server = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := cb.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("callback listener stopped")
		}
	}()
	log.Debug().Str("addr", cb.addr).Str("path", path).Msg("callback listener started")
	return cb, nil
}

// wait returns the URL the browser was redirected to.
func (cb *callbackListener) wait(ctx context.Context, timeout time.Duration) (*url.URL, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case u := <-cb.received:
		return u, nil
	case <-timer.C:
		return nil, fmt.Errorf("no sign-in redirect received within %s", timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (cb *callbackListener) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cb.server.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("callback listener shutdown")
	}
}
