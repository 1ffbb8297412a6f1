package session

import (
	"errors"
	"fmt"
	"os"
)

const (
	// SecretEnvVar is the default environment variable holding the
	// token signing secret.
	SecretEnvVar = "SITEKEEPER_SESSION_SECRET"
)

// Secret is the symmetric key used to sign and verify session tokens.
// It must be identical across every process that shares tokens.
type Secret []byte

// ErrMissingSecret indicates the process was started without a signing
// secret. Serving traffic in that state would make every login fail in
// confusing ways, so callers should treat this as fatal.
var ErrMissingSecret = errors.New("session: signing secret is not configured")

// Zero overwrites the secret bytes.
func (s Secret) Zero() {
	for i := range s {
		s[i] = 0
	}
}

// SecretFromEnv reads the signing secret from varname and clears the
// variable afterwards, so the key does not linger in the environment of
// child processes. getfn/setfn default to os.Getenv/os.Setenv and exist
// so tests do not need to mutate the real environment.
func SecretFromEnv(varname string, getfn func(string) string, setfn func(string, string) error) (Secret, error) {
	if getfn == nil {
		getfn = os.Getenv
	}
	if setfn == nil {
		setfn = os.Setenv
	}
	val := getfn(varname)
	if err := setfn(varname, ""); err != nil {
		return nil, fmt.Errorf("unable to clear %v from the environment, cause %w", varname, err)
	}
	if len(val) == 0 {
		return nil, ErrMissingSecret
	}
	return Secret(val), nil
}
