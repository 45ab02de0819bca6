// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// RenderTarget is a CPU-accessible frame a filter pass writes into.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// Pixels returns direct access to pixel data.
	// For RGBA format, each pixel is 4 bytes: R, G, B, A.
	Pixels() []byte

	// Stride returns the number of bytes per row.
	Stride() int
}

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// Example:
//
//	target := render.NewPixmapTarget(1280, 720)
//	res := host.Render(self, target, compositor)
//	img := target.Image()
type PixmapTarget struct {
	img    *image.RGBA
	format gputypes.TextureFormat
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		format: gputypes.TextureFormatRGBA8Unorm,
	}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img, format: gputypes.TextureFormatRGBA8Unorm}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format.
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return t.format
}

// SetFormat changes the byte order pixels are stored in.
// Only RGBA8Unorm and BGRA8Unorm are meaningful; existing contents are
// not converted.
func (t *PixmapTarget) SetFormat(f gputypes.TextureFormat) {
	t.format = f
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear fills the entire target with the given color.
func (t *PixmapTarget) Clear(c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	bounds := t.img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			t.img.SetRGBA(x, y, rgba)
		}
	}
}

// Resize replaces the target with one of the given dimensions.
// The contents are not preserved.
func (t *PixmapTarget) Resize(width, height int) {
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Ensure PixmapTarget implements RenderTarget.
var _ RenderTarget = (*PixmapTarget)(nil)
