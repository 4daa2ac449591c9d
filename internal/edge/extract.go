// Package edge converts raster images into binary edge maps.
package edge

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Options configures edge extraction.
type Options struct {
	LowThreshold  float32 // Hysteresis lower bound; weak edges at or above it survive only next to strong ones
	HighThreshold float32 // Gradient magnitude at or above this is a strong edge
	BlurKernel    int     // Gaussian kernel size in pixels (odd)
	BlurSigma     float64 // 0 derives sigma from the kernel size
}

// DefaultOptions returns the recognised defaults (Canny 50/150 on a 5x5 blur).
func DefaultOptions() Options {
	return Options{
		LowThreshold:  50,
		HighThreshold: 150,
		BlurKernel:    5,
	}
}

// normalized fills unset fields and forces an odd kernel size.
func (o Options) normalized() Options {
	if o.BlurKernel <= 0 {
		o.BlurKernel = DefaultOptions().BlurKernel
	}
	if o.BlurKernel%2 == 0 {
		o.BlurKernel++
	}
	if o.LowThreshold > o.HighThreshold {
		o.LowThreshold, o.HighThreshold = o.HighThreshold, o.LowThreshold
	}
	return o
}

// EdgeMap is a binary edge mask. Edge pixels are 255, everything else 0.
// Coordinates are zero-based regardless of the source image bounds.
type EdgeMap struct {
	Mask *image.Gray
}

// Width returns the mask width in pixels.
func (m *EdgeMap) Width() int {
	if m == nil || m.Mask == nil {
		return 0
	}
	return m.Mask.Bounds().Dx()
}

// Height returns the mask height in pixels.
func (m *EdgeMap) Height() int {
	if m == nil || m.Mask == nil {
		return 0
	}
	return m.Mask.Bounds().Dy()
}

// At reports whether (x, y) is an edge pixel.
func (m *EdgeMap) At(x, y int) bool {
	if m == nil || m.Mask == nil {
		return false
	}
	return m.Mask.GrayAt(x, y).Y != 0
}

// Count returns the number of edge pixels.
func (m *EdgeMap) Count() int {
	if m == nil || m.Mask == nil {
		return 0
	}
	n := 0
	for _, v := range m.Mask.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// Extract runs grayscale conversion, Gaussian smoothing and Canny edge
// detection with hysteresis on img. The input image is never modified.
func Extract(img image.Image, opts Options) (*EdgeMap, error) {
	if err := Validate(img); err != nil {
		return nil, err
	}
	opts = opts.normalized()

	src := ImageToMat(img)
	defer src.Close()

	// Convert to grayscale
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	// Blur to reduce noise
	blurred := gocv.NewMat()
	defer blurred.Close()
	ksize := image.Point{X: opts.BlurKernel, Y: opts.BlurKernel}
	gocv.GaussianBlur(gray, &blurred, ksize, opts.BlurSigma, opts.BlurSigma, gocv.BorderDefault)

	// Canny edge detection
	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, opts.LowThreshold, opts.HighThreshold)

	return &EdgeMap{Mask: MatToGray(edges)}, nil
}

// ImageToMat converts a Go image.Image to a gocv.Mat in BGR format.
// The caller owns the returned Mat.
func ImageToMat(img image.Image) gocv.Mat {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}

	return mat
}

// MatToGray copies a single-channel 8-bit Mat into a binary *image.Gray.
func MatToGray(mat gocv.Mat) *image.Gray {
	h, w := mat.Rows(), mat.Cols()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mat.GetUCharAt(y, x) > 0 {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// GrayToMat copies a mask into a new single-channel Mat owned by the caller.
func GrayToMat(mask *image.Gray) gocv.Mat {
	b := mask.Bounds()
	mat := gocv.NewMatWithSize(b.Dy(), b.Dx(), gocv.MatTypeCV8U)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			mat.SetUCharAt(y, x, mask.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
		}
	}
	return mat
}
