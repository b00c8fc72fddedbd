package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/sickfits/internal/auth"
	"github.com/erazemk/sickfits/internal/store"
)

// SessionMiddleware attaches an auth.Session to every request. A valid,
// unrevoked token cookie fills in the user; anything else leaves the request
// anonymous.
func SessionMiddleware(secret string, db *sql.DB, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := auth.NewSession(w, secure)
			loadSession(r, s, secret, db)
			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), s)))
		})
	}
}

func loadSession(r *http.Request, s *auth.Session, secret string, db *sql.DB) {
	cookie, err := r.Cookie(auth.CookieName)
	if err != nil || cookie.Value == "" {
		return
	}

	claims, err := auth.ValidateToken(secret, cookie.Value)
	if err != nil {
		s.Clear()
		return
	}

	if claims.ID != "" {
		revoked, err := store.IsTokenRevoked(r.Context(), db, claims.ID)
		if err != nil {
			slog.Error("failed to check token revocation", "error", err)
			return
		}
		if revoked {
			s.Clear()
			return
		}
	}

	s.UserID = claims.UserID
	s.TokenID = claims.ID
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
}
