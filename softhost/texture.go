package softhost

import (
	"image"

	"github.com/gogpu/vbg/gpucore"
)

// Texture is a CPU-resident texture.
type Texture struct {
	Width   uint32
	Height  uint32
	Format  gpucore.TextureFormat
	Dynamic bool

	// Pix holds tightly packed rows of Width*Format.BytesPerPixel() bytes.
	Pix []byte
}

func newTexture(w, h uint32, format gpucore.TextureFormat, flags gpucore.TextureFlags) *Texture {
	return &Texture{
		Width:   w,
		Height:  h,
		Format:  format,
		Dynamic: flags&gpucore.TextureDynamic != 0,
		Pix:     make([]byte, int(w)*int(h)*format.BytesPerPixel()),
	}
}

// RowBytes returns the number of bytes in one packed row.
func (t *Texture) RowBytes() int {
	return int(t.Width) * t.Format.BytesPerPixel()
}

// setImage copies rows of stride bytes from data into the texture.
// It reports false if data is too short.
func (t *Texture) setImage(data []byte, stride uint32, flip bool) bool {
	row := t.RowBytes()
	h := int(t.Height)
	if h == 0 || int(stride) < row || len(data) < int(stride)*(h-1)+row {
		return false
	}
	for y := 0; y < h; y++ {
		srcY := y
		if flip {
			srcY = h - 1 - y
		}
		src := data[srcY*int(stride) : srcY*int(stride)+row]
		copy(t.Pix[y*row:(y+1)*row], src)
	}
	return true
}

// Image returns a view of the texture sharing its memory.
// A8 textures are returned as *image.Gray, RGBA8 as *image.RGBA.
func (t *Texture) Image() image.Image {
	r := image.Rect(0, 0, int(t.Width), int(t.Height))
	if t.Format == gpucore.TextureFormatA8 {
		return &image.Gray{Pix: t.Pix, Stride: t.RowBytes(), Rect: r}
	}
	return &image.RGBA{Pix: t.Pix, Stride: t.RowBytes(), Rect: r}
}
