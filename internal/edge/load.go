package edge

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrInvalidImage is matched by every *InvalidImageError.
var ErrInvalidImage = errors.New("invalid image")

// InvalidImageError reports an image that could not be loaded or has no pixels.
// It is the only error the pipeline produces and is raised before any stage runs.
type InvalidImageError struct {
	Source string // File path, or "<buffer>" for in-memory input
	Reason string
	Err    error // Underlying open/decode error, if any
}

func (e *InvalidImageError) Error() string {
	msg := fmt.Sprintf("invalid image %s: %s", e.Source, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidImageError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrInvalidImage) true for any InvalidImageError.
func (e *InvalidImageError) Is(target error) bool { return target == ErrInvalidImage }

const bufferSource = "<buffer>"

// Load opens and decodes an image file (PNG, JPEG, GIF, BMP, TIFF or WebP).
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &InvalidImageError{Source: path, Reason: "failed to open image", Err: err}
	}
	defer file.Close()

	return decode(file, path)
}

// Decode decodes an image held in memory or streamed from r.
func Decode(r io.Reader) (image.Image, error) {
	return decode(r, bufferSource)
}

// DecodeBytes decodes an encoded image buffer.
func DecodeBytes(data []byte) (image.Image, error) {
	return decode(bytes.NewReader(data), bufferSource)
}

func decode(r io.Reader, source string) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &InvalidImageError{Source: source, Reason: "failed to decode image", Err: err}
	}
	if err := validate(img, source); err != nil {
		return nil, err
	}
	return img, nil
}

// Validate rejects nil images and images with a zero dimension.
func Validate(img image.Image) error {
	return validate(img, bufferSource)
}

func validate(img image.Image, source string) error {
	if img == nil {
		return &InvalidImageError{Source: source, Reason: "no image"}
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return &InvalidImageError{
			Source: source,
			Reason: fmt.Sprintf("zero-size image (%dx%d)", b.Dx(), b.Dy()),
		}
	}
	return nil
}
