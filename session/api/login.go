package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/amaralab/sitekeeper/internal/logutil"
	"github.com/amaralab/sitekeeper/session"
)

type (
	loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	messageBody struct {
		Message string `json:"message"`
	}
)

// LoginHandler authenticates the admin user and plants the session cookie.
// Unknown username and wrong password produce byte-identical 401 responses;
// only a credential store failure is allowed to look different (500), so
// operators can tell "not authenticated" from "system broken".
func (s *Realm) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logutil.GetOrDefault(r.Context())
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
		cred, found, err := s.creds.FindByUsername(r.Context(), req.Username)
		if err != nil {
			log.Error().Err(err).Msg("Unable to load credentials")
			writeMessage(w, http.StatusInternalServerError, "unable to process login")
			return
		}
		if !found || !session.VerifyPassword(req.Password, cred.PasswordHash) {
			writeMessage(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		token, err := s.tokens.Issue(cred.UserID, cred.Username)
		if err != nil {
			log.Error().Err(err).Msg("Unable to issue session token")
			writeMessage(w, http.StatusInternalServerError, "unable to process login")
			return
		}
		http.SetCookie(w, s.sessionCookie(token, int(s.tokens.TTL()/time.Second)))
		writeMessage(w, http.StatusOK, "login successful")
	}
}

// LogoutHandler clears the session cookie. The Path attribute must match
// the one used at issuance, a mismatch makes browsers silently keep the
// old cookie.
func (s *Realm) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		cookie := s.sessionCookie("", -1)
		cookie.Expires = time.Unix(0, 0)
		http.SetCookie(w, cookie)
		writeMessage(w, http.StatusOK, "logout successful")
	}
}

// LoginPageHandler serves a bare login form so the gate's redirect has a
// destination even when no frontend is deployed in front of the API.
func (s *Realm) LoginPageHandler() http.HandlerFunc {
	const page = `<!doctype html>
<title>sitekeeper admin</title>
<form method="post" action="/admin/login" onsubmit="login(event)">
<input name="username" placeholder="username" autocomplete="username">
<input name="password" type="password" placeholder="password" autocomplete="current-password">
<button>Sign in</button>
</form>
<script>
async function login(ev) {
	ev.preventDefault();
	const form = ev.target;
	const res = await fetch(form.action, {
		method: 'POST',
		headers: {'Content-Type': 'application/json'},
		body: JSON.stringify({username: form.username.value, password: form.password.value}),
	});
	if (res.ok) { window.location = '/admin/api/session'; }
	else { alert('invalid credentials'); }
}
</script>
`
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(page))
	}
}

// SessionInfoHandler echoes the authenticated identity. It only ever runs
// behind Protect, so missing claims indicate a wiring bug rather than an
// unauthenticated caller.
func (s *Realm) SessionInfoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromRequest(r)
		if claims == nil {
			writeMessage(w, http.StatusInternalServerError, "session gate not engaged")
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(struct {
			Username  string `json:"username"`
			ExpiresAt int64  `json:"expiresAt"`
		}{Username: claims.Username, ExpiresAt: claims.ExpiresAt.Unix()})
	}
}

func (s *Realm) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   !s.insecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(messageBody{Message: msg})
}
