package mask

import (
	"image"
	"sync"

	"github.com/gogpu/vbg/gpucore"
	xdraw "golang.org/x/image/draw"
)

// StaticSource serves the same mask for every source it is asked about.
// It is safe for concurrent use; Set may be called from the goroutine that
// computes masks while the render thread reads them.
type StaticSource struct {
	mu     sync.RWMutex
	width  uint32
	height uint32
	data   []byte
}

var _ gpucore.MaskSource = (*StaticSource)(nil)

// NewStaticSource creates a source serving a width x height mask.
// data is copied; it must hold width*height bytes.
func NewStaticSource(width, height uint32, data []byte) *StaticSource {
	s := &StaticSource{}
	s.Set(width, height, data)
	return s
}

// Set replaces the served mask. data is copied.
func (s *StaticSource) Set(width, height uint32, data []byte) {
	n := int(width) * int(height)
	buf := make([]byte, n)
	copy(buf, data)

	s.mu.Lock()
	s.width, s.height, s.data = width, height, buf
	s.mu.Unlock()
}

// MaskWidth implements gpucore.MaskSource.
func (s *StaticSource) MaskWidth(gpucore.SourceID) uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width
}

// MaskHeight implements gpucore.MaskSource.
func (s *StaticSource) MaskHeight(gpucore.SourceID) uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.height
}

// FillMask implements gpucore.MaskSource.
func (s *StaticSource) FillMask(_ gpucore.SourceID, dst []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copy(dst, s.data)
}

// FromImage converts any image to a single-channel mask of the given size.
// The image is resampled with bilinear filtering when sizes differ; a zero
// width or height keeps the image size.
func FromImage(img image.Image, width, height int) *image.Gray {
	b := img.Bounds()
	if width <= 0 || height <= 0 {
		width, height = b.Dx(), b.Dy()
	}
	dst := image.NewGray(image.Rect(0, 0, width, height))
	if width == b.Dx() && height == b.Dy() {
		xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
		return dst
	}
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// NewImageSource creates a StaticSource from an image.
func NewImageSource(img image.Image, width, height int) *StaticSource {
	g := FromImage(img, width, height)
	w, h := g.Bounds().Dx(), g.Bounds().Dy()
	data := make([]byte, 0, w*h)
	for y := 0; y < h; y++ {
		data = append(data, g.Pix[y*g.Stride:y*g.Stride+w]...)
	}
	return NewStaticSource(uint32(w), uint32(h), data) //nolint:gosec // image sizes fit uint32
}
