// Package blob stores processed item pictures and returns the URLs they are
// served from.
package blob

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/sickfits/internal/imaging"
	"github.com/erazemk/sickfits/internal/store"
)

// Store saves an object under key and returns its public URL.
type Store interface {
	Put(ctx context.Context, key string, data []byte, mime string) (string, error)
}

// ImagePathPrefix is where DBStore images are served.
const ImagePathPrefix = "/images/"

// DBStore keeps images in the SQLite database.
type DBStore struct {
	DB *sql.DB
}

func (s *DBStore) Put(ctx context.Context, key string, data []byte, mime string) (string, error) {
	if err := store.PutImage(ctx, s.DB, key, data, mime); err != nil {
		return "", err
	}
	return ImagePathPrefix + key, nil
}

// NewKey returns a unique object key for an item picture.
func NewKey(suffix string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("items/%d/%02d/%v%s.jpg", d.Year(), d.Month(), uuid.New(), suffix)
}

// SaveVariants stores both sizes of a processed picture and returns the
// image and largeImage URLs.
func SaveVariants(ctx context.Context, s Store, v *imaging.Variants) (string, string, error) {
	base := NewKey("")
	largeKey := base[:len(base)-len(".jpg")] + "-large.jpg"

	image, err := s.Put(ctx, base, v.Image, imaging.OutputMIME)
	if err != nil {
		return "", "", fmt.Errorf("storing image: %w", err)
	}
	large, err := s.Put(ctx, largeKey, v.Large, imaging.OutputMIME)
	if err != nil {
		return "", "", fmt.Errorf("storing large image: %w", err)
	}
	return image, large, nil
}

// SaveUpload processes an uploaded picture and stores both sizes. Input that
// is not a JPEG or PNG yields an error wrapping imaging.ErrUnsupported.
func SaveUpload(ctx context.Context, s Store, r io.Reader) (string, string, error) {
	v, err := imaging.Process(r)
	if err != nil {
		return "", "", err
	}
	return SaveVariants(ctx, s, v)
}
