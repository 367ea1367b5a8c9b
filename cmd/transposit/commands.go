package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	transposit "github.com/jrsteele09/go-transposit-sdk"
	"github.com/jrsteele09/go-transposit-sdk/browser"
	"github.com/jrsteele09/go-transposit-sdk/internal/config"
	errs "github.com/jrsteele09/go-transposit-sdk/internal/errors"
	"github.com/jrsteele09/go-transposit-sdk/oauthmodel"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

var errUsage = errors.New("invalid arguments, see --help")

type app struct {
	client  *transposit.Client
	browser *browser.System
	cfg     config.Config
	out     io.Writer
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "complete":
		return a.complete(ctx, rest)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "settings":
		return a.settings()
	case "run":
		return a.run(ctx, rest)
	case "stash":
		return a.stash(ctx, rest)
	}
	return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
}

func (a *app) login(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
	provider := flags.String("provider", "", "skip provider selection: google or slack")
	if err := flags.Parse(args); err != nil {
		return err
	}

	redirectURI := a.cfg.GetRedirectURI()
	cb, err := listenForCallback("localhost:"+a.cfg.GetCallbackPort(), a.cfg.GetCallbackPath())
	if err != nil {
		log.Warn().Err(err).Msg("could not start the callback listener")
	}

	signInURL, err := a.client.SignInURL(redirectURI, oauthmodel.Provider(*provider))
	if err != nil {
		if cb != nil {
			cb.close()
		}
		return err
	}
	if err := a.browser.Navigate(signInURL); err != nil {
		log.Warn().Err(err).Msg("could not open a browser")
		fmt.Fprintf(a.out, "Open this URL to sign in:\n\n  %s\n\n", signInURL)
	}

	if cb == nil {
		fmt.Fprintln(a.out, "After signing in, run: transposit complete '<the URL you were redirected to>'")
		return nil
	}
	defer cb.close()

	fmt.Fprintln(a.out, "Waiting for the sign-in to complete...")
	location, err := cb.wait(ctx, a.cfg.GetCallbackTimeout())
	if err != nil {
		return err
	}
	a.browser.SetLocation(location)
	return a.finishSignIn(ctx)
}

func (a *app) complete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	location, err := url.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid callback URL: %w", err)
	}
	a.browser.SetLocation(location)
	return a.finishSignIn(ctx)
}

func (a *app) finishSignIn(ctx context.Context) error {
	result, err := a.client.CompleteSignIn(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed in.")
	if result.NeedsKeys {
		settings, err := a.client.SettingsURI(a.client.Origin())
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Connect your accounts before running operations:\n\n  %s\n", settings)
	}
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.client.SignOut(ctx, a.client.Origin()); err != nil {
		log.Warn().Err(err).Msg("could not open the hosted logout")
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) settings() error {
	u, err := a.client.SettingsURI(a.client.Origin())
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, u)
	return nil
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	params, err := parseParameters(args[1:])
	if err != nil {
		return err
	}
	resp, err := a.client.Run(ctx, args[0], params)
	if err != nil {
		var opErr *transposit.OperationError
		if errs.As(err, &opErr) {
			fmt.Fprintf(a.out, "request id: %s\n", opErr.RequestID)
		}
		return err
	}
	log.Debug().Str("request_id", resp.RequestID).Int("results", len(resp.Results)).Msg("operation succeeded")
	return printJSON(a.out, resp.Results)
}

func (a *app) stash(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	s := a.client.Stash()
	switch {
	case args[0] == "list" && len(args) == 1:
		keys, err := s.ListKeys(ctx)
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Fprintln(a.out, k)
		}
		return nil
	case args[0] == "get" && len(args) == 2:
		var value json.RawMessage
		found, err := s.Get(ctx, args[1], &value)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("stash key %q not found", args[1])
		}
		return printJSON(a.out, value)
	case args[0] == "put" && len(args) == 3:
		var value any
		if err := json.Unmarshal([]byte(args[2]), &value); err != nil {
			value = args[2]
		}
		return s.Put(ctx, args[1], value)
	case args[0] == "rm" && len(args) == 2:
		return s.Remove(ctx, args[1])
	}
	return errUsage
}

// parseParameters turns name=value arguments into operation parameters.
func parseParameters(args []string) (transposit.Parameters, error) {
	params := transposit.Parameters{}
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("parameter %q is not name=value: %w", arg, errUsage)
		}
		params[name] = value
	}
	return params, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
