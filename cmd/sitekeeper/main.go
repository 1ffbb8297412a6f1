package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/amaralab/sitekeeper/cmd/sitekeeper/admin"
	"github.com/amaralab/sitekeeper/cmd/sitekeeper/catalog"
	"github.com/amaralab/sitekeeper/cmd/sitekeeper/serve"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "sitekeeper",
		Usage: "Backend for the research group website",
		Commands: []*cli.Command{
			serve.Cmd(),
			catalog.Cmd(),
			admin.Cmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Error().Err(err).Msg("Application failed")
	}
}
