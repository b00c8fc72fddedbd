package auth

import (
	"context"
	"net/http"
	"time"
)

// CookieName is the name of the session cookie.
const CookieName = "token"

// Session is the per-request authentication state. The HTTP layer fills it
// from the cookie; resolvers read the user id and issue or clear the cookie
// through it.
type Session struct {
	UserID    int64
	TokenID   string
	ExpiresAt time.Time

	w      http.ResponseWriter
	secure bool
}

// NewSession creates an anonymous session writing cookies to w.
func NewSession(w http.ResponseWriter, secure bool) *Session {
	return &Session{w: w, secure: secure}
}

// LoggedIn reports whether the request carries a valid session token.
func (s *Session) LoggedIn() bool {
	return s != nil && s.UserID != 0
}

// SetToken issues token as the session cookie for userID.
func (s *Session) SetToken(token string, userID int64) {
	s.UserID = userID
	if s.w == nil {
		return
	}
	http.SetCookie(s.w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenExpiry / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear removes the session cookie and forgets the user.
func (s *Session) Clear() {
	s.UserID = 0
	if s.w == nil {
		return
	}
	http.SetCookie(s.w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type contextKey string

const sessionKey contextKey = "session"

// WithSession returns a context carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFrom returns the session stored in ctx, or nil.
func SessionFrom(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey).(*Session)
	return s
}

// UserIDFrom returns the authenticated user id from ctx.
func UserIDFrom(ctx context.Context) (int64, bool) {
	s := SessionFrom(ctx)
	if !s.LoggedIn() {
		return 0, false
	}
	return s.UserID, true
}
