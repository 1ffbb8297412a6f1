package session

import "context"

type (
	// Credential is one stored admin identity. It is created by the
	// provisioning command and never mutated by the authentication core.
	Credential struct {
		UserID       int64
		Username     string
		PasswordHash string
	}

	// CredentialStore is the read-only boundary towards whatever holds
	// the users table. The bool result distinguishes "no such user" from
	// a store failure: the former is an authentication outcome, the
	// latter is an operational problem and must surface as one.
	CredentialStore interface {
		FindByUsername(ctx context.Context, username string) (Credential, bool, error)
	}
)
