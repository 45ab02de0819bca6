package softhost

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/vbg/internal/parallel"
)

// Kernel executes a program on the CPU. frame is the parent frame, bound
// maps parameter names to the textures bound to them, and the result is
// written to dst, which has the frame's bounds. Per-row work goes through
// rows so the host can spread it across workers.
type Kernel func(dst, frame *image.RGBA, bound map[string]*Texture, rows RowFunc)

// RowFunc calls fn for row bands [y0, y1) covering [0, height) and
// returns when all of them are done.
type RowFunc func(height int, fn func(y0, y1 int))

// SerialRows runs fn over all rows on the calling goroutine.
func SerialRows(height int, fn func(y0, y1 int)) {
	parallel.Rows(nil, height, fn)
}

// resample draws src over the whole of dst, scaling with bilinear
// filtering when the sizes differ.
func resample(dst xdraw.Image, src image.Image) {
	db, sb := dst.Bounds(), src.Bounds()
	if db.Dx() == sb.Dx() && db.Dy() == sb.Dy() {
		xdraw.Draw(dst, db, src, sb.Min, xdraw.Src)
		return
	}
	xdraw.BiLinear.Scale(dst, db, src, sb, xdraw.Src, nil)
}

// BlendKernel multiplies the frame by the "mask" texture, turning the
// mask into the alpha channel. Frames without a bound mask are copied.
func BlendKernel(dst, frame *image.RGBA, bound map[string]*Texture, rows RowFunc) {
	m, ok := bound["mask"]
	if !ok || m == nil {
		xdraw.Draw(dst, dst.Bounds(), frame, frame.Bounds().Min, xdraw.Src)
		return
	}

	alpha := image.NewGray(dst.Bounds())
	resample(alpha, m.Image())

	b := dst.Bounds()
	fb := frame.Bounds()
	rows(b.Dy(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < b.Dx(); x++ {
				a := uint32(alpha.Pix[y*alpha.Stride+x])
				fi := frame.PixOffset(fb.Min.X+x, fb.Min.Y+y)
				di := dst.PixOffset(b.Min.X+x, b.Min.Y+y)
				// Frames are premultiplied, so every channel scales by the mask.
				for c := 0; c < 4; c++ {
					dst.Pix[di+c] = uint8((uint32(frame.Pix[fi+c])*a + 127) / 255)
				}
			}
		}
	})
}

// OverlayKernel replaces the frame with the "mask" texture drawn as an
// opaque image.
func OverlayKernel(dst, frame *image.RGBA, bound map[string]*Texture, rows RowFunc) {
	m, ok := bound["mask"]
	if !ok || m == nil {
		xdraw.Draw(dst, dst.Bounds(), frame, frame.Bounds().Min, xdraw.Src)
		return
	}
	resample(dst, m.Image())
	b := dst.Bounds()
	rows(b.Dy(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := dst.Pix[dst.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < b.Dx(); x++ {
				row[x*4+3] = 255
			}
		}
	})
}
