package catalog

import (
	"github.com/amaralab/sitekeeper/catalog"
	"github.com/amaralab/sitekeeper/internal/cmdflags"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	catalogDir := "./data"
	return &cli.Command{
		Name:  "catalog",
		Usage: "Manage the site catalog database",
		Flags: []cli.Flag{
			cmdflags.Catalog(&catalogDir),
		},
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Create the catalog database and its schema if missing",
				Action: func(ctx *cli.Context) error {
					store, err := catalog.Open(ctx.Context, catalogDir, true)
					if err != nil {
						return err
					}
					return store.Close()
				},
			},
		},
	}
}
