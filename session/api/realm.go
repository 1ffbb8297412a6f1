package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/amaralab/sitekeeper/internal/logutil"
	"github.com/amaralab/sitekeeper/session"
)

type (
	// Realm guards the admin area of the site. It bundles the credential
	// store, the token issuer/verifier and the cookie policy so there is
	// exactly one implementation of the login/logout/interception logic
	// instead of one slightly different copy per route.
	Realm struct {
		creds          session.CredentialStore
		tokens         *session.Tokens
		insecureCookie bool
	}

	claimsKey struct{}
)

const (
	// CookieName is the cookie that carries the session token.
	CookieName = "token"

	// LoginPath is where denied requests are redirected to. It must
	// never require a session, otherwise login becomes unreachable.
	LoginPath = "/admin/login"

	// LogoutPath must also stay open: clearing the cookie has to work
	// for a caller whose session already expired.
	LogoutPath = "/admin/logout"

	protectedPrefix = "/admin"
)

// NewRealm builds the admin security realm. allowHTTPCookie drops the
// Secure attribute from issued cookies and exists for local development
// only.
func NewRealm(creds session.CredentialStore, tokens *session.Tokens, allowHTTPCookie bool) *Realm {
	return &Realm{
		creds:          creds,
		tokens:         tokens,
		insecureCookie: allowHTTPCookie,
	}
}

// Protect intercepts every request ahead of sensitive. Requests outside
// the protected prefix pass through untouched. Protected requests proceed
// only when checkSession hands back claims; every failure reason (missing
// cookie, malformed token, bad signature, expired session) redirects to
// the login page identically, so the response shape does not reveal
// session state.
func (s *Realm) Protect(sensitive http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !protectedPath(r.URL.Path) {
			sensitive.ServeHTTP(w, r)
			return
		}
		claims, err := s.checkSession(r)
		if err != nil {
			log := logutil.GetOrDefault(r.Context())
			log.Debug().Err(err).Str("path", r.URL.Path).Msg("Session check failed")
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		sensitive.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// checkSession is the only route to an allowed protected request: it
// cannot succeed without the verifier handing back claims.
func (s *Realm) checkSession(r *http.Request) (*session.Claims, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, session.TokenError{Reason: session.TokenAbsent}
	}
	return s.tokens.Verify(cookie.Value)
}

func protectedPath(path string) bool {
	if path != protectedPrefix && !strings.HasPrefix(path, protectedPrefix+"/") {
		return false
	}
	if path == LoginPath || strings.HasPrefix(path, LoginPath+"/") {
		return false
	}
	if path == LogoutPath {
		return false
	}
	return true
}

func withClaims(ctx context.Context, claims *session.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromRequest returns the claims attached by Protect, or nil when
// the request did not pass through the gate.
func ClaimsFromRequest(r *http.Request) *session.Claims {
	claims, _ := r.Context().Value(claimsKey{}).(*session.Claims)
	return claims
}
