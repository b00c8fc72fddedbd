package api

import (
	"database/sql"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/erazemk/sickfits/internal/blob"
)

// NewRouter creates the API router with all endpoints registered. Requests
// are expected to carry a session from SessionMiddleware.
func NewRouter(db *sql.DB, schema *graphql.Schema, images blob.Store) http.Handler {
	mux := http.NewServeMux()

	graphqlHandler := &GraphQLHandler{Schema: schema}
	imagesHandler := &ImagesHandler{DB: db, Images: images}

	mux.Handle("POST /api/graphql", graphqlHandler)
	mux.HandleFunc("POST /api/upload", imagesHandler.Upload)

	// Pictures kept in SQLite; S3 pictures are served by the bucket.
	mux.HandleFunc("GET "+blob.ImagePathPrefix+"{key...}", imagesHandler.Get)

	return mux
}
