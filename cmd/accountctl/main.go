// Command accountctl signs up, logs in and resets passwords against the
// Account Service from a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sefazor/ourphotos-accounts/internal/config"
	"github.com/sefazor/ourphotos-accounts/pkg/account"
	"github.com/sefazor/ourphotos-accounts/pkg/accountclient"
	"github.com/sefazor/ourphotos-accounts/pkg/logger"
)

const usage = `Usage: accountctl [flags] <command>

Commands:
  signup           create an account
  reset-password   reset a forgotten password with an emailed code
  login            log in and print the access token

Flags:
`

var errAborted = errors.New("aborted")

func main() {
	_ = godotenv.Load()
	cfg := config.LoadClientConfig()

	fs := flag.NewFlagSet("accountctl", flag.ExitOnError)
	fs.StringVar(&cfg.APIURL, "api", cfg.APIURL, "Account Service base URL")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug|info|warn|error)")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "accountctl:", err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, "accountctl:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := accountclient.New(cfg.APIURL, cfg.Timeout, log)
	if err := run(ctx, fs.Args(), client, newPrompter(os.Stdin, os.Stdout), log); err != nil {
		if !errors.Is(err, errAborted) {
			fmt.Fprintln(os.Stderr, "accountctl:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, svc account.Service, p *prompter, log *zap.Logger) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "signup":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return runSignup(ctx, p, svc, log)
	case "reset-password":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		email := fs.String("email", "", "account email; skips the email prompt")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return runReset(ctx, p, svc, log, *email)
	case "login":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		email := fs.String("email", "", "account email")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return runLogin(ctx, p, svc, *email)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
