package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/sickfits/internal/auth"
	"github.com/erazemk/sickfits/internal/blob"
	"github.com/erazemk/sickfits/internal/imaging"
	"github.com/erazemk/sickfits/internal/store"
)

// ImagesHandler handles item picture upload and download.
type ImagesHandler struct {
	DB     *sql.DB
	Images blob.Store
}

type uploadResponse struct {
	Image      string `json:"image"`
	LargeImage string `json:"largeImage"`
}

// Upload handles POST /api/upload. The multipart field "file" is processed
// into both picture sizes and their URLs are returned.
func (h *ImagesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFrom(r.Context())
	if !ok {
		jsonError(w, http.StatusUnauthorized, "you must be logged in to do that")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	image, large, err := blob.SaveUpload(r.Context(), h.Images, file)
	if errors.Is(err, imaging.ErrUnsupported) {
		jsonError(w, http.StatusBadRequest, "image must be JPEG or PNG")
		return
	}
	if err != nil {
		slog.Error("failed to store upload", "user", userID, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	slog.Info("image uploaded", "user", userID, "image", image)
	jsonResponse(w, http.StatusOK, uploadResponse{Image: image, LargeImage: large})
}

// Get handles GET /images/{key...}.
func (h *ImagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetImage(r.Context(), h.DB, r.PathValue("key"))
	if err != nil {
		slog.Error("failed to get image", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write image response", "error", err)
	}
}
