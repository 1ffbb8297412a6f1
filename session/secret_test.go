package session

import (
	"errors"
	"testing"
)

func TestSecretFromEnvReadsAndClears(t *testing.T) {
	env := map[string]string{"TEST_SECRET": "super-secret"}
	getfn := func(name string) string { return env[name] }
	setfn := func(name, value string) error {
		env[name] = value
		return nil
	}
	secret, err := SecretFromEnv("TEST_SECRET", getfn, setfn)
	if err != nil {
		t.Fatal(err)
	}
	if string(secret) != "super-secret" {
		t.Fatalf("unexpected secret %q", secret)
	}
	if env["TEST_SECRET"] != "" {
		t.Fatal("reading the secret should remove it from the environment")
	}
}

func TestSecretFromEnvMissingIsFatal(t *testing.T) {
	getfn := func(string) string { return "" }
	setfn := func(string, string) error { return nil }
	_, err := SecretFromEnv("TEST_SECRET", getfn, setfn)
	if !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestSecretZero(t *testing.T) {
	secret := Secret("wipe-me")
	secret.Zero()
	for i, b := range secret {
		if b != 0 {
			t.Fatalf("byte %v not zeroed", i)
		}
	}
}
