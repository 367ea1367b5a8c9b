package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	transposit "github.com/jrsteele09/go-transposit-sdk"
	"github.com/jrsteele09/go-transposit-sdk/browser"
	"github.com/jrsteele09/go-transposit-sdk/internal/config"
	"github.com/jrsteele09/go-transposit-sdk/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

const usage = `usage: transposit [flags] <command> [args]

commands:
  login [--provider google|slack]   sign in through the hosted login
  complete <callback-url>           finish a sign-in from a pasted redirect URL
  logout                            sign out
  whoami                            show the signed-in user
  settings                          print the settings page URL
  run <operation> [name=value ...]  run an operation
  stash list|get|put|rm [key] [json]

flags:
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Error().Err(err).Msg("transposit")
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	c := config.New()

	flags := pflag.NewFlagSet("transposit", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	origin := flags.String("origin", c.GetOrigin(), "hosted app origin, e.g. https://myapp.transposit.io")
	authMode := flags.String("auth-mode", c.GetAuthMode(), "bearer or public_token")
	dataFolder := flags.String("data", c.GetDataFolder(), "folder the session is stored in")
	logLevel := flags.String("log-level", c.GetLogLevel(), "trace, debug, info, warn or error")
	noBanner := flags.Bool("no-banner", false, "do not print the banner")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	setupLogging(*logLevel)

	if flags.NArg() == 0 {
		flags.Usage()
		return errors.New("missing command")
	}
	if *origin == "" {
		return errors.New("no origin: set TRANSPOSIT_ORIGIN or pass --origin")
	}
	mode, ok := transposit.ParseAuthMode(*authMode)
	if !ok {
		return fmt.Errorf("unknown auth mode %q", *authMode)
	}

	if !*noBanner {
		displayAppname(c.GetAppName())
	}

	store, err := storage.NewFileStore(*dataFolder)
	if err != nil {
		return err
	}
	sys := browser.NewSystem()
	client, err := transposit.New(*origin,
		transposit.WithStore(store),
		transposit.WithBrowser(sys),
		transposit.WithAuthMode(mode),
		transposit.WithClientID(c.GetClientID()),
		transposit.WithScope(c.GetScope()),
		transposit.WithLogoutTimeout(c.GetLogoutTimeout()),
		transposit.WithLogger(log.Logger),
	)
	if err != nil {
		return err
	}
	log.Debug().Str("origin", client.Origin()).Str("storage", store.Path()).Str("auth_mode", mode.String()).Msg("client ready")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		client:  client,
		browser: sys,
		cfg:     c,
		out:     stdout,
	}
	return a.dispatch(ctx, flags.Args())
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
