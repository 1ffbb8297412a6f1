package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long a session stays valid. The cookie Max-Age is
// always derived from the same value (see Tokens.TTL), so the claim expiry
// and the cookie lifetime cannot drift apart.
const DefaultTTL = 48 * time.Hour

type (
	// Claims is the decoded payload of a session token.
	Claims struct {
		UserID   int64  `json:"uid"`
		Username string `json:"username"`
		jwt.RegisteredClaims
	}

	// Tokens issues and verifies signed session tokens. The zero value is
	// not usable; build one with NewTokens. A Tokens value is immutable
	// after construction and safe for concurrent use.
	Tokens struct {
		secret Secret
		ttl    time.Duration
		now    func() time.Time
	}

	// FailReason classifies why a token was rejected.
	FailReason int

	// TokenError is returned by Verify for any rejected token.
	TokenError struct {
		Reason FailReason
	}
)

const (
	// TokenAbsent means no token was supplied at all.
	TokenAbsent FailReason = iota
	// TokenMalformed means the string could not be parsed as a token.
	TokenMalformed
	// TokenSignatureInvalid means the MAC did not verify, either because
	// the token was tampered with or it was signed with another secret.
	TokenSignatureInvalid
	// TokenExpired means the signature verified but the token is past
	// its expiry.
	TokenExpired
)

func (r FailReason) String() string {
	switch r {
	case TokenAbsent:
		return "absent"
	case TokenMalformed:
		return "malformed"
	case TokenSignatureInvalid:
		return "signature-invalid"
	case TokenExpired:
		return "expired"
	}
	return "unknown"
}

func (e TokenError) Error() string {
	return fmt.Sprintf("session: token rejected: %v", e.Reason)
}

// NewTokens builds a token issuer/verifier bound to the given secret.
// A non-positive ttl falls back to DefaultTTL.
func NewTokens(secret Secret, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tokens{secret: secret, ttl: ttl, now: time.Now}
}

// TTL exposes the configured session lifetime so cookie attributes can be
// computed from the same source as the claim expiry.
func (t *Tokens) TTL() time.Duration { return t.ttl }

// Issue signs a fresh token for an already authenticated identity.
func (t *Tokens) Issue(userID int64, username string) (string, error) {
	now := t.now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.secret))
	if err != nil {
		return "", fmt.Errorf("unable to sign session token, cause %w", err)
	}
	return tok, nil
}

// Verify validates signature and expiry and returns the embedded claims.
// Any rejection is reported as a TokenError; Verify never panics on
// malformed input. There is no leeway: a token is expired the moment the
// clock reaches its exp claim.
func (t *Tokens) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, TokenError{Reason: TokenAbsent}
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(t.now),
	)
	tok, err := parser.ParseWithClaims(raw, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return []byte(t.secret), nil
	})
	if err != nil {
		return nil, TokenError{Reason: classify(err)}
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, TokenError{Reason: TokenMalformed}
	}
	return claims, nil
}

func classify(err error) FailReason {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return TokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return TokenSignatureInvalid
	default:
		return TokenMalformed
	}
}
