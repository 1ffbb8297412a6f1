package admin

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/amaralab/sitekeeper/catalog"
	"github.com/amaralab/sitekeeper/internal/cmdflags"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	var store *catalog.Store
	catalogDir := "./data"
	return &cli.Command{
		Name:  "admin",
		Usage: "Provision the administrative login",
		Flags: []cli.Flag{
			cmdflags.Catalog(&catalogDir),
		},
		Before: func(ctx *cli.Context) error {
			var err error
			store, err = catalog.Open(ctx.Context, catalogDir, true)
			return err
		},
		After: func(*cli.Context) error {
			if store != nil {
				return store.Close()
			}
			return nil
		},
		Subcommands: []*cli.Command{
			registerCmd(&store),
			removeCmd(&store),
		},
	}
}

func registerCmd(store **catalog.Store) *cli.Command {
	var username string
	return &cli.Command{
		Name:  "register",
		Usage: "Register a new admin user (password is read from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "username",
				Aliases:     []string{"u", "user"},
				Usage:       "Name of the user to register",
				Destination: &username,
				Required:    true,
			},
		},
		Action: func(ctx *cli.Context) error {
			sc := bufio.NewScanner(os.Stdin)
			if !sc.Scan() {
				return sc.Err()
			}
			password := strings.TrimSpace(sc.Text())
			if len(password) == 0 {
				return errors.New("missing password from stdin")
			}
			return (*store).RegisterAdmin(ctx.Context, username, password)
		},
	}
}

func removeCmd(store **catalog.Store) *cli.Command {
	var username string
	return &cli.Command{
		Name:  "remove",
		Usage: "Remove an admin user, ending their ability to log in",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "username",
				Aliases:     []string{"u", "user"},
				Usage:       "Name of the user to remove",
				Destination: &username,
				Required:    true,
			},
		},
		Action: func(ctx *cli.Context) error {
			return (*store).RemoveAdmin(ctx.Context, username)
		},
	}
}
