// Package session implements the authentication core for the admin area.
//
// The design is deliberately small: a single admin user, a bcrypt hash in
// the catalog, and a signed stateless token in a cookie. There is no
// revocation list, which means a leaked token stays valid until it expires
// on its own. If that ever becomes a problem the fix is to rotate the
// signing secret, which invalidates every outstanding session at once.
//
// The signing secret is read from the environment exactly once, at process
// start, and the variable is cleared right after. Request handling code
// never touches ambient state: the secret lives inside a Tokens value that
// is built during startup and is immutable afterwards, so the whole package
// can be exercised concurrently without locks.
package session
