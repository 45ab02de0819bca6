package halhost

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vbg"
	"github.com/gogpu/vbg/gpucore"
	"github.com/gogpu/vbg/internal/gfxlock"
	"github.com/gogpu/vbg/shader"
)

// ErrNilDevice is returned by New when the device or queue is nil.
var ErrNilDevice = errors.New("halhost: nil device or queue")

// Pass is one filter pass handed to a PassRunner.
type Pass struct {
	Self    gpucore.SourceID
	Parent  gpucore.SourceID
	Program *shader.Program
	Module  hal.ShaderModule

	// Views maps parameter names to the views of their bound textures.
	Views map[string]hal.TextureView

	X, Y uint32
}

// PassRunner executes filter passes for a Host.
type PassRunner interface {
	// BeginPass reports whether a pass for self can start, typically
	// whether the parent has a frame and an output target exists.
	BeginPass(self, parent gpucore.SourceID, format gputypes.TextureFormat) bool

	// Draw records the pass.
	Draw(p Pass)
}

// Stats counts the resources a Host has handed out.
type Stats struct {
	TexturesCreated   int
	TexturesDestroyed int
	ProgramsLoaded    int
	ProgramsDestroyed int
	Uploads           int
	Passes            int
}

type texture struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
	format gpucore.TextureFormat
}

type program struct {
	*shader.Program
	module hal.ShaderModule
	bound  map[string]gpucore.TextureID
}

type param struct {
	prog gpucore.ProgramID
	name string
}

// Host is a gpucore.Host backed by a hal.Device.
type Host struct {
	device hal.Device
	queue  hal.Queue
	opts   options
	cache  *shader.Cache

	gfx gfxlock.Lock

	mu       sync.Mutex
	nextID   uint64
	parents  map[gpucore.SourceID]gpucore.SourceID
	textures map[gpucore.TextureID]*texture
	programs map[gpucore.ProgramID]*program
	params   map[gpucore.ParamID]param
	pending  map[gpucore.SourceID]gpucore.SourceID
	stats    Stats
}

// Ensure Host implements gpucore.Host.
var _ gpucore.Host = (*Host)(nil)

// New creates a Host on device and queue.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Host, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = shader.NewCache(shader.DefaultCacheSize)
	}
	return &Host{
		cache:    o.cache,
		device:   device,
		queue:    queue,
		opts:     o,
		parents:  make(map[gpucore.SourceID]gpucore.SourceID),
		textures: make(map[gpucore.TextureID]*texture),
		programs: make(map[gpucore.ProgramID]*program),
		params:   make(map[gpucore.ParamID]param),
		pending:  make(map[gpucore.SourceID]gpucore.SourceID),
	}, nil
}

func (h *Host) next() uint64 {
	h.nextID++
	return h.nextID
}

// Attach makes parent the source self filters.
func (h *Host) Attach(self, parent gpucore.SourceID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.parents[self] = parent
}

// Stats returns a snapshot of the resource counters.
func (h *Host) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

// EnterGraphics implements gpucore.Host. Other goroutines block until
// the outermost LeaveGraphics; the holder may enter again.
func (h *Host) EnterGraphics() {
	h.gfx.Enter()
}

// LeaveGraphics implements gpucore.Host.
func (h *Host) LeaveGraphics() {
	if !h.gfx.Leave() {
		vbg.Logger().Warn("halhost: LeaveGraphics without EnterGraphics")
	}
}

// InGraphics reports whether the calling goroutine holds the graphics
// context.
func (h *Host) InGraphics() bool {
	return h.gfx.Held()
}

// FilterParent implements gpucore.Host.
func (h *Host) FilterParent(self gpucore.SourceID) gpucore.SourceID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.parents[self]
}

// CreateTexture implements gpucore.Host.
func (h *Host) CreateTexture(w, ht uint32, format gpucore.TextureFormat, _ gpucore.TextureFlags) gpucore.TextureID {
	gpuFormat := format.GPUFormat()
	if w == 0 || ht == 0 || gpuFormat == gputypes.TextureFormatUndefined {
		return gpucore.InvalidID
	}

	label := fmt.Sprintf("vbg_%s_%dx%d", format, w, ht)
	tex, err := h.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: ht, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gpuFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		vbg.Logger().Warn("halhost: create texture failed", "label", label, "err", err)
		return gpucore.InvalidID
	}
	view, err := h.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gpuFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		h.device.DestroyTexture(tex)
		vbg.Logger().Warn("halhost: create texture view failed", "label", label, "err", err)
		return gpucore.InvalidID
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	id := gpucore.TextureID(h.next())
	h.textures[id] = &texture{tex: tex, view: view, width: w, height: ht, format: format}
	h.stats.TexturesCreated++
	return id
}

// DestroyTexture implements gpucore.Host.
func (h *Host) DestroyTexture(id gpucore.TextureID) {
	h.mu.Lock()
	t, ok := h.textures[id]
	if ok {
		delete(h.textures, id)
		h.stats.TexturesDestroyed++
	}
	h.mu.Unlock()
	if !ok {
		return
	}
	h.device.DestroyTextureView(t.view)
	h.device.DestroyTexture(t.tex)
}

// SetImage implements gpucore.Host. Flipped uploads are written one row
// at a time in reverse order.
func (h *Host) SetImage(id gpucore.TextureID, data []byte, rowStride uint32, flip bool) {
	h.mu.Lock()
	t, ok := h.textures[id]
	h.mu.Unlock()
	if !ok {
		return
	}

	row := t.width * uint32(t.format.BytesPerPixel())
	if rowStride < row || uint64(len(data)) < uint64(rowStride)*uint64(t.height-1)+uint64(row) {
		vbg.Logger().Warn("halhost: short image upload", "texture", uint64(id), "bytes", len(data))
		return
	}

	if !flip {
		h.queue.WriteTexture(
			&hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0},
			data,
			&hal.ImageDataLayout{Offset: 0, BytesPerRow: rowStride, RowsPerImage: t.height},
			&hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
		)
	} else {
		for y := uint32(0); y < t.height; y++ {
			src := (t.height - 1 - y) * rowStride
			h.queue.WriteTexture(
				&hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0, Origin: hal.Origin3D{Y: y}},
				data[src:src+row],
				&hal.ImageDataLayout{Offset: 0, BytesPerRow: row, RowsPerImage: 1},
				&hal.Extent3D{Width: t.width, Height: 1, DepthOrArrayLayers: 1},
			)
		}
	}

	h.mu.Lock()
	h.stats.Uploads++
	h.mu.Unlock()
}

// LoadProgram implements gpucore.Host.
func (h *Host) LoadProgram(path string) gpucore.ProgramID {
	p, err := h.cache.Load(h.opts.fsys, path, h.opts.compile)
	if err != nil {
		vbg.Logger().Warn("halhost: program load failed", "path", path, "err", err)
		return gpucore.InvalidID
	}

	src := hal.ShaderSource{SPIRV: p.SPIRV}
	if h.opts.wgsl {
		src = hal.ShaderSource{WGSL: p.Source}
	}
	module, err := h.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  p.Label,
		Source: src,
	})
	if err != nil {
		vbg.Logger().Warn("halhost: create shader module failed", "path", path, "err", err)
		return gpucore.InvalidID
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	id := gpucore.ProgramID(h.next())
	h.programs[id] = &program{Program: p, module: module, bound: make(map[string]gpucore.TextureID)}
	h.stats.ProgramsLoaded++
	return id
}

// DestroyProgram implements gpucore.Host.
func (h *Host) DestroyProgram(id gpucore.ProgramID) {
	h.mu.Lock()
	p, ok := h.programs[id]
	if ok {
		delete(h.programs, id)
		for pid, prm := range h.params {
			if prm.prog == id {
				delete(h.params, pid)
			}
		}
		h.stats.ProgramsDestroyed++
	}
	h.mu.Unlock()
	if ok {
		h.device.DestroyShaderModule(p.module)
	}
}

// ParamByName implements gpucore.Host.
func (h *Host) ParamByName(prog gpucore.ProgramID, name string) gpucore.ParamID {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, ok := h.programs[prog]
	if !ok {
		return gpucore.InvalidID
	}
	if _, ok := p.Param(name); !ok {
		return gpucore.InvalidID
	}
	for id, prm := range h.params {
		if prm.prog == prog && prm.name == name {
			return id
		}
	}
	id := gpucore.ParamID(h.next())
	h.params[id] = param{prog: prog, name: name}
	return id
}

// SetTexture implements gpucore.Host.
func (h *Host) SetTexture(id gpucore.ParamID, tex gpucore.TextureID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	prm, ok := h.params[id]
	if !ok {
		return
	}
	if p, ok := h.programs[prm.prog]; ok {
		p.bound[prm.name] = tex
	}
}

// BeginFilter implements gpucore.Host.
func (h *Host) BeginFilter(self gpucore.SourceID, format gpucore.TextureFormat, _ gpucore.RenderFlags) bool {
	h.mu.Lock()
	parent, attached := h.parents[self]
	h.mu.Unlock()
	if !attached || h.opts.runner == nil {
		return false
	}
	if !h.opts.runner.BeginPass(self, parent, format.GPUFormat()) {
		return false
	}

	h.mu.Lock()
	h.pending[self] = parent
	h.mu.Unlock()
	return true
}

// EndFilter implements gpucore.Host.
func (h *Host) EndFilter(self gpucore.SourceID, prog gpucore.ProgramID, x, y uint32) {
	h.mu.Lock()
	parent, begun := h.pending[self]
	delete(h.pending, self)
	p, ok := h.programs[prog]
	var pass Pass
	if begun && ok {
		pass = Pass{
			Self:    self,
			Parent:  parent,
			Program: p.Program,
			Module:  p.module,
			Views:   make(map[string]hal.TextureView, len(p.bound)),
			X:       x,
			Y:       y,
		}
		for name, tex := range p.bound {
			if t, ok := h.textures[tex]; ok {
				pass.Views[name] = t.view
			}
		}
		h.stats.Passes++
	}
	h.mu.Unlock()

	if !begun || !ok {
		vbg.Logger().Warn("halhost: EndFilter without pass", "source", uint64(self))
		return
	}
	h.opts.runner.Draw(pass)
}
