package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/amaralab/sitekeeper/session"
)

// FindByUsername implements session.CredentialStore on top of the users
// table. Absence is not an error: the login handler must treat an unknown
// user and a wrong password identically.
func (s *Store) FindByUsername(ctx context.Context, username string) (session.Credential, bool, error) {
	var cred session.Credential
	err := s.db.QueryRowContext(ctx, `select user_id, username, password_hash
		from users where username = ?`, username).
		Scan(&cred.UserID, &cred.Username, &cred.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Credential{}, false, nil
	} else if err != nil {
		return session.Credential{}, false, fmt.Errorf("unable to load credentials for %v, cause %w", username, err)
	}
	return cred, true, nil
}

// RegisterAdmin stores a new admin credential. The password is hashed
// here so plaintext never reaches the database layer by accident.
func (s *Store) RegisterAdmin(ctx context.Context, username, password string) error {
	if err := s.guardWrite(); err != nil {
		return err
	}
	if username == "" || password == "" {
		return InvalidRecord{Reason: "username and password are required"}
	}
	hash, err := session.HashPassword(password)
	if err != nil {
		return fmt.Errorf("unable to hash password, cause %w", err)
	}
	_, err = s.db.ExecContext(ctx, `insert into users (username, password_hash) values (?, ?)`,
		username, hash)
	if err != nil {
		return fmt.Errorf("unable to register admin %v, cause %w", username, err)
	}
	return nil
}

// RemoveAdmin deletes an admin credential.
func (s *Store) RemoveAdmin(ctx context.Context, username string) error {
	if err := s.guardWrite(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `delete from users where username = ?`, username)
	if err != nil {
		return fmt.Errorf("unable to remove admin %v, cause %w", username, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return RecordNotFound{Kind: "admin", ID: 0}
	}
	return nil
}
