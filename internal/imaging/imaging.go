package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// Target sizes: the listing image and the full-size detail image.
const (
	ImageDimension = 500
	LargeDimension = 1000
)

// JPEGQuality is the compression quality for JPEG output.
const JPEGQuality = 85

// MaxUploadSize bounds the accepted input size.
const MaxUploadSize = 10 << 20

// OutputMIME is the MIME type of every processed variant.
const OutputMIME = "image/jpeg"

// AllowedMIME lists the accepted input MIME types.
var AllowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// ErrUnsupported is returned for input that is not a decodable JPEG or PNG.
var ErrUnsupported = errors.New("image must be JPEG or PNG")

// Variants holds the two encoded sizes of an uploaded picture.
type Variants struct {
	Image []byte
	Large []byte
}

// Process reads image data, validates the format by sniffing bytes, and
// produces a listing-size and a large variant, both re-encoded as JPEG.
// Pictures are never upscaled.
func Process(r io.Reader) (*Variants, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}
	if len(data) > MaxUploadSize {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrUnsupported, MaxUploadSize)
	}

	// Client headers are not trusted.
	detected := http.DetectContentType(data)
	if !AllowedMIME[detected] {
		return nil, fmt.Errorf("%w: got %s", ErrUnsupported, detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	small, err := encode(downscale(img, ImageDimension))
	if err != nil {
		return nil, err
	}
	large, err := encode(downscale(img, LargeDimension))
	if err != nil {
		return nil, err
	}

	return &Variants{Image: small, Large: large}, nil
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// downscale resizes the image so neither dimension exceeds maxDim, keeping
// the aspect ratio. Uses Catmull-Rom interpolation.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}

	newW = max(newW, 1)
	newH = max(newH, 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func init() {
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
