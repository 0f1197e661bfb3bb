package web

import (
	"context"
	"net/http"
	"time"

	"github.com/webchat-dev/webchat/internal/server/auth"
)

// sessionCookieName is the cookie carrying the signed session token.
const sessionCookieName = "session"

// Session is the authenticated identity attached to a request.
type Session struct {
	UserID   int64
	Username string
}

type sessionCtxKey struct{}

// SessionManager validates session cookies and attaches the resulting
// Session to the request context. Tokens are HS256 JWTs issued by the users
// service; the manager only verifies and clears them.
type SessionManager struct {
	secret   []byte
	validity time.Duration
}

func NewSessionManager(secret []byte, validity time.Duration) *SessionManager {
	return &SessionManager{secret: secret, validity: validity}
}

// Authenticate reads and verifies the session cookie. A missing, malformed
// or expired cookie is treated as no session; the request continues
// anonymously and the protection wrappers decide what to do.
func (m *SessionManager) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := auth.ParseToken(cookie.Value, m.secret)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		sess := &Session{UserID: claims.UserID, Username: claims.Username}
		ctx := context.WithValue(r.Context(), sessionCtxKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects anonymous requests with 401. Used for the JSON API.
func (m *SessionManager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromContext(r.Context()) == nil {
			apiError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuthRedirect bounces anonymous requests to the login form. Used
// for page routes.
func (m *SessionManager) RequireAuthRedirect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromContext(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFromContext returns the authenticated session, or nil.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionCtxKey{}).(*Session)
	return sess
}

// SetCookie installs the signed token as the session cookie.
func (m *SessionManager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.validity.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie.
func (m *SessionManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
