package filter

import (
	"fmt"

	"github.com/gogpu/vbg"
	"github.com/gogpu/vbg/gpucore"
	"github.com/gogpu/vbg/mask"
)

// RenderFrame draws one output frame.
//
// The effect argument is the host's default program for the pass; the
// compositor always draws with its own blend or mask overlay program.
//
// RenderFrame never panics and never returns a hard failure: a frame that
// cannot be drawn is reported as skipped and the compositor stays usable.
func (c *Compositor) RenderFrame(effect gpucore.ProgramID) (res FrameResult) {
	_ = effect
	if c == nil || c.blendProgram == gpucore.InvalidID || c.maskProgram == gpucore.InvalidID {
		return skipped(ErrNotReady)
	}
	if c.parent == gpucore.InvalidID {
		c.parent = c.host.FilterParent(c.self)
		if c.parent == gpucore.InvalidID {
			return skipped(ErrNoParent)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %v", ErrUnexpectedFault, r)
			vbg.Logger().Error("vbg: exception in render", "err", err)
			res = skipped(err)
		}
	}()
	return c.render()
}

func (c *Compositor) render() FrameResult {
	w := c.source.MaskWidth(c.parent)
	h := c.source.MaskHeight(c.parent)

	if w != c.maskWidth || h != c.maskHeight {
		c.destroyTextures()
		// Both buffers are sized from the mask; drop them together.
		c.staging.Release()
		c.staging2.Release()
		c.maskWidth, c.maskHeight = w, h
		vbg.Logger().Debug("vbg: mask size changed", "width", w, "height", h)
	}
	if w == 0 || h == 0 {
		return skipped(ErrNoMask)
	}

	if c.blendTexture == gpucore.InvalidID || c.maskTexture == gpucore.InvalidID {
		c.ensureTextures()
	}

	pixels := int(w) * int(h)
	buf := c.staging.Ensure(pixels)
	c.source.FillMask(c.parent, buf)

	var (
		tex    gpucore.TextureID
		prog   gpucore.ProgramID
		param  gpucore.ParamID
		data   []byte
		stride uint32
	)
	switch c.mode {
	case RenderModeBlend:
		tex, prog, param = c.blendTexture, c.blendProgram, c.blendParam
		data, stride = buf, w
	case RenderModeMask:
		rgba := c.staging2.Ensure(pixels * 4)
		if err := mask.Expand(rgba, buf); err != nil {
			return skipped(err)
		}
		tex, prog, param = c.maskTexture, c.maskProgram, c.maskParam
		data, stride = rgba, w*4
	default:
		vbg.Logger().Error("vbg: unknown render mode", "mode", c.mode)
		return skipped(fmt.Errorf("%w: %d", ErrUnknownRenderMode, c.mode))
	}

	if tex == gpucore.InvalidID {
		return skipped(ErrTextureCreate)
	}
	c.upload(tex, data, stride)

	if !c.host.BeginFilter(c.self, gpucore.TextureFormatRGBA8, gpucore.AllowDirectRendering) {
		return skipped(ErrRenderPassUnavailable)
	}
	c.host.SetTexture(param, tex)
	c.host.EndFilter(c.self, prog, 0, 0)

	c.frames++
	return rendered()
}

func (c *Compositor) upload(tex gpucore.TextureID, data []byte, stride uint32) {
	defer gpucore.Graphics(c.host)()
	c.host.SetImage(tex, data, stride, false)
}
