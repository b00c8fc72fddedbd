package web

import (
	"net/http"

	"github.com/erazemk/sickfits/internal/blob"
	"github.com/erazemk/sickfits/internal/graph"
	webembed "github.com/erazemk/sickfits/web"
)

// NewRouter creates the storefront router with all page routes registered.
// Requests are expected to carry a session from api.SessionMiddleware.
func NewRouter(client *graph.Client, images blob.Store) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Templates: templates,
		Client:    client,
		Images:    images,
	}

	mux := http.NewServeMux()

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.Static))))

	mux.Handle("GET /{$}", http.RedirectHandler("/items", http.StatusSeeOther))
	mux.HandleFunc("GET /items", s.ItemsPage)
	mux.HandleFunc("GET /item", s.ItemPage)

	mux.Handle("GET /sell", RequireLogin(http.HandlerFunc(s.SellPage)))
	mux.HandleFunc("POST /sell", s.SellSubmit)
	mux.Handle("GET /update", RequireLogin(http.HandlerFunc(s.UpdatePage)))
	mux.HandleFunc("POST /update", s.UpdateSubmit)
	mux.HandleFunc("POST /delete", s.DeleteSubmit)

	mux.HandleFunc("GET /signup", s.SignupPage)
	mux.HandleFunc("POST /signup", s.SignupSubmit)
	mux.HandleFunc("POST /signin", s.SigninSubmit)
	mux.HandleFunc("POST /signout", s.SignoutSubmit)
	mux.HandleFunc("POST /request-reset", s.RequestResetSubmit)
	mux.HandleFunc("GET /reset", s.ResetPage)
	mux.HandleFunc("POST /reset", s.ResetSubmit)

	mux.Handle("GET /permissions", RequireLogin(http.HandlerFunc(s.PermissionsPage)))
	mux.Handle("POST /permissions", RequireLogin(http.HandlerFunc(s.PermissionsSubmit)))

	return mux, nil
}
