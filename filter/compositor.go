package filter

import (
	"fmt"

	"github.com/gogpu/vbg"
	"github.com/gogpu/vbg/gpucore"
	"github.com/gogpu/vbg/mask"
	"github.com/gogpu/vbg/settings"
)

// Compositor is the state of one filter attachment.
//
// A Compositor is driven from the host's render thread only: RenderFrame,
// Update and Destroy must not be called concurrently.
type Compositor struct {
	host    gpucore.Host
	source  gpucore.MaskSource
	self    gpucore.SourceID
	parent  gpucore.SourceID // resolved on first render, not owned
	options options

	blendProgram gpucore.ProgramID
	maskProgram  gpucore.ProgramID
	blendParam   gpucore.ParamID
	maskParam    gpucore.ParamID

	blendTexture gpucore.TextureID // A8
	maskTexture  gpucore.TextureID // RGBA8

	staging  mask.Staging // 1 byte per pixel
	staging2 mask.Staging // 4 bytes per pixel, mask overlay only

	maskWidth  uint32
	maskHeight uint32

	mode   RenderMode
	frames uint64
}

// Create builds a compositor for the filter instance self.
//
// Both shader programs are loaded up front. If either fails to load, every
// resource created so far is released and the returned error wraps
// ErrShaderLoad. A nil data applies the default settings.
func Create(host gpucore.Host, source gpucore.MaskSource, data *settings.Data, self gpucore.SourceID, opts ...Option) (*Compositor, error) {
	if host == nil || source == nil {
		return nil, ErrNilHost
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	vbg.Logger().Info("vbg: creating render filter", "version", vbg.Version, "source", uint64(self))

	c := &Compositor{
		host:    host,
		source:  source,
		self:    self,
		options: o,
	}

	if err := c.loadPrograms(); err != nil {
		c.Destroy()
		return nil, err
	}

	if data == nil {
		data = DefaultSettings()
	}
	c.Update(data)
	return c, nil
}

func (c *Compositor) loadPrograms() error {
	defer gpucore.Graphics(c.host)()

	var err error
	c.blendProgram, c.blendParam, err = c.loadProgram(c.options.blendPath)
	if err != nil {
		return err
	}
	c.maskProgram, c.maskParam, err = c.loadProgram(c.options.maskPath)
	return err
}

func (c *Compositor) loadProgram(path string) (gpucore.ProgramID, gpucore.ParamID, error) {
	prog := c.host.LoadProgram(path)
	if prog == gpucore.InvalidID {
		return gpucore.InvalidID, gpucore.InvalidID, fmt.Errorf("%w: %s", ErrShaderLoad, path)
	}
	param := c.host.ParamByName(prog, c.options.paramName)
	if param == gpucore.InvalidID {
		// Keep the program so Destroy releases it.
		return prog, gpucore.InvalidID, fmt.Errorf("%w: %s has no %q parameter", ErrShaderLoad, path, c.options.paramName)
	}
	return prog, param, nil
}

// Update applies settings. Any render mode token other than the blend
// token selects the mask overlay. Update has no GPU side effects.
func (c *Compositor) Update(data *settings.Data) {
	mode := ParseRenderMode(data.String(SettingRenderMode))
	if mode != c.mode {
		vbg.Logger().Info("vbg: render mode changed", "from", c.mode, "to", mode)
	}
	c.mode = mode
}

// Destroy releases every GPU and CPU resource of the compositor. It is
// safe to call on a partially created compositor and more than once.
func (c *Compositor) Destroy() {
	if c == nil || c.host == nil {
		return
	}
	func() {
		defer gpucore.Graphics(c.host)()
		c.host.DestroyProgram(c.blendProgram)
		c.host.DestroyProgram(c.maskProgram)
		c.host.DestroyTexture(c.blendTexture)
		c.host.DestroyTexture(c.maskTexture)
	}()
	c.blendProgram, c.maskProgram = gpucore.InvalidID, gpucore.InvalidID
	c.blendParam, c.maskParam = gpucore.InvalidID, gpucore.InvalidID
	c.blendTexture, c.maskTexture = gpucore.InvalidID, gpucore.InvalidID
	c.staging.Release()
	c.staging2.Release()
}

// Mode returns the current render mode.
func (c *Compositor) Mode() RenderMode {
	return c.mode
}

// FrameCount returns the number of frames rendered so far.
func (c *Compositor) FrameCount() uint64 {
	return c.frames
}

// MaskSize returns the last observed mask dimensions.
func (c *Compositor) MaskSize() (width, height uint32) {
	return c.maskWidth, c.maskHeight
}

func (c *Compositor) destroyTextures() {
	if c.blendTexture == gpucore.InvalidID && c.maskTexture == gpucore.InvalidID {
		return
	}
	defer gpucore.Graphics(c.host)()
	c.host.DestroyTexture(c.blendTexture)
	c.host.DestroyTexture(c.maskTexture)
	c.blendTexture, c.maskTexture = gpucore.InvalidID, gpucore.InvalidID
}

// ensureTextures (re)creates both mask textures at the cached mask size.
// Zero-area masks create nothing. Creation failures are logged and leave
// the texture invalid; the next frame retries.
func (c *Compositor) ensureTextures() {
	w, h := c.maskWidth, c.maskHeight
	if w == 0 || h == 0 {
		return
	}
	c.destroyTextures()

	defer gpucore.Graphics(c.host)()
	c.blendTexture = c.host.CreateTexture(w, h, gpucore.TextureFormatA8, gpucore.TextureDynamic)
	if c.blendTexture == gpucore.InvalidID {
		vbg.Logger().Warn("vbg: can't create texture", "format", gpucore.TextureFormatA8, "width", w, "height", h)
	}
	c.maskTexture = c.host.CreateTexture(w, h, gpucore.TextureFormatRGBA8, gpucore.TextureDynamic)
	if c.maskTexture == gpucore.InvalidID {
		vbg.Logger().Warn("vbg: can't create texture", "format", gpucore.TextureFormatRGBA8, "width", w, "height", h)
	}
	vbg.Logger().Debug("vbg: mask textures created", "width", w, "height", h)
}
