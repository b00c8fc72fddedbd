package web

import (
	"net/http"

	"github.com/erazemk/sickfits/internal/auth"
)

// RequireLogin sends anonymous visitors to the sign in page.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserIDFrom(r.Context()); !ok {
			http.Redirect(w, r, "/signup", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
