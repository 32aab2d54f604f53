// Command login submits an email/password pair to a running login server.
//
// Exit status is 0 when the server accepts the credentials, 1 when it
// rejects them and 2 when the form is invalid or the server is unreachable.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"flixauth/internal/client"
	"flixauth/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	serverURL := fs.String("server", envOr("FLIXAUTH_SERVER", "http://localhost:5000"), "login server base URL")
	email := fs.String("email", "", "account email")
	password := fs.String("password", os.Getenv("FLIXAUTH_PASSWORD"), "account password (or FLIXAUTH_PASSWORD)")
	timeout := fs.Duration("timeout", client.DefaultTimeout, "request timeout")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	if err := logger.Init(level, "console"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := client.NewClient(*serverURL).Login(ctx, *email, *password)
	if err != nil {
		var verr *client.ValidationError
		if errors.As(err, &verr) {
			if verr.Email != "" {
				fmt.Fprintln(os.Stderr, verr.Email)
			}
			if verr.Password != "" {
				fmt.Fprintln(os.Stderr, verr.Password)
			}
			return 2
		}
		log.Error().Err(err).Str("server", *serverURL).Msg("Login request failed")
		return 2
	}

	fmt.Println(res.Message)
	if !res.Authenticated() {
		return 1
	}
	return 0
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
