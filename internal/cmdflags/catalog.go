package cmdflags

import (
	"github.com/amaralab/sitekeeper/session"
	"github.com/urfave/cli/v2"
)

// Catalog points a command at the directory holding the site database.
func Catalog(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "catalog",
		Aliases:     []string{"c"},
		Usage:       "Directory where the site catalog is stored",
		Destination: out,
		Value:       *out,
	}
}

// SecretEnvVar names the environment variable that carries the session
// signing secret. The secret itself must never be passed as an argument,
// argv is visible to every process on the box.
func SecretEnvVar(out *string) cli.Flag {
	if len(*out) == 0 {
		*out = session.SecretEnvVar
	}
	return &cli.StringFlag{
		Name:        "secret-envvar-name",
		Usage:       "Name of the environment variable that holds the session signing secret",
		Value:       *out,
		Destination: out,
	}
}
