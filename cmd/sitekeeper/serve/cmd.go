package serve

import (
	"os"

	"github.com/amaralab/sitekeeper/catalog"
	catapi "github.com/amaralab/sitekeeper/catalog/api"
	"github.com/amaralab/sitekeeper/internal/cmdflags"
	"github.com/amaralab/sitekeeper/internal/httpserver"
	"github.com/amaralab/sitekeeper/session"
	authapi "github.com/amaralab/sitekeeper/session/api"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	bindAddr := "localhost:7080"
	catalogDir := "./data"
	secretEnvVar := ""
	insecureCookie := false
	sessionTTL := session.DefaultTTL
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the website backend (public reads plus the gated admin API)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "bind",
				Usage:       "Address to bind the HTTP server to",
				Value:       bindAddr,
				Destination: &bindAddr,
			},
			cmdflags.Catalog(&catalogDir),
			cmdflags.SecretEnvVar(&secretEnvVar),
			&cli.BoolFlag{
				Name:        "insecure-cookie",
				Usage:       "Issue session cookies without the Secure attribute (local development only)",
				Value:       insecureCookie,
				Destination: &insecureCookie,
			},
			&cli.DurationFlag{
				Name:        "session-ttl",
				Usage:       "How long an admin session stays valid; the cookie Max-Age always follows this value",
				Value:       sessionTTL,
				Destination: &sessionTTL,
			},
		},
		Action: func(ctx *cli.Context) error {
			// fail fast: without a secret the gate cannot verify anything
			secret, err := session.SecretFromEnv(secretEnvVar, os.Getenv, os.Setenv)
			if err != nil {
				return err
			}
			defer secret.Zero()
			store, err := catalog.Open(ctx.Context, catalogDir, true)
			if err != nil {
				return err
			}
			defer store.Close()

			tokens := session.NewTokens(secret, sessionTTL)
			realm := authapi.NewRealm(store, tokens, insecureCookie)
			handler, err := catapi.AsHandler(ctx.Context, store, realm)
			if err != nil {
				return err
			}
			return httpserver.Serve(ctx.Context, bindAddr, realm.Protect(handler))
		},
	}
}
