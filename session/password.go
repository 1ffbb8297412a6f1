package session

import "golang.org/x/crypto/bcrypt"

// hashCost matches the cost used by the provisioning scripts that created
// the credentials currently in production.
const hashCost = 10

// HashPassword derives a salted bcrypt hash suitable for storage in the
// catalog users table.
func HashPassword(plain string) (string, error) {
	buf, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
// Every failure mode (wrong password, corrupt hash, empty input) collapses
// to false: callers must not be able to tell them apart, otherwise the
// login endpoint leaks which usernames exist.
func VerifyPassword(plain, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plain)) == nil
}
