package softhost

import (
	"image"
	"path"
	"strings"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/vbg"
	"github.com/gogpu/vbg/filter"
	"github.com/gogpu/vbg/gpucore"
	"github.com/gogpu/vbg/internal/gfxlock"
	"github.com/gogpu/vbg/internal/parallel"
	"github.com/gogpu/vbg/render"
	"github.com/gogpu/vbg/shader"
)

// Stats counts the resources a Host has handed out.
type Stats struct {
	TexturesCreated   int
	TexturesDestroyed int
	ProgramsLoaded    int
	ProgramsDestroyed int
	Uploads           int
	Passes            int

	// Violations counts GPU calls made outside the graphics bracket.
	Violations int
}

// LiveTextures returns the number of textures not yet destroyed.
func (s Stats) LiveTextures() int { return s.TexturesCreated - s.TexturesDestroyed }

// LivePrograms returns the number of programs not yet destroyed.
func (s Stats) LivePrograms() int { return s.ProgramsLoaded - s.ProgramsDestroyed }

type program struct {
	*shader.Program
	kernel Kernel
	bound  map[string]gpucore.TextureID
}

type param struct {
	prog gpucore.ProgramID
	name string
}

// pass is the state of the filter pass between BeginFilter and EndFilter.
type pass struct {
	self   gpucore.SourceID
	frame  *image.RGBA
	target render.RenderTarget
}

// Host is a CPU gpucore.Host.
type Host struct {
	opts  options
	cache *shader.Cache
	pool  *parallel.WorkerPool

	gfx gfxlock.Lock

	mu       sync.Mutex
	nextID   uint64
	parents  map[gpucore.SourceID]gpucore.SourceID
	frames   map[gpucore.SourceID]*image.RGBA
	textures map[gpucore.TextureID]*Texture
	programs map[gpucore.ProgramID]*program
	params   map[gpucore.ParamID]param
	targets  map[gpucore.SourceID]render.RenderTarget
	active   *pass
	stats    Stats
}

// New creates a Host.
func New(opts ...Option) *Host {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	cache := o.cache
	if cache == nil {
		cache = shader.NewCache(shader.DefaultCacheSize)
	}
	var pool *parallel.WorkerPool
	if o.workers != 1 {
		pool = parallel.NewWorkerPool(o.workers)
	}
	return &Host{
		opts:     o,
		cache:    cache,
		pool:     pool,
		parents:  make(map[gpucore.SourceID]gpucore.SourceID),
		frames:   make(map[gpucore.SourceID]*image.RGBA),
		textures: make(map[gpucore.TextureID]*Texture),
		programs: make(map[gpucore.ProgramID]*program),
		params:   make(map[gpucore.ParamID]param),
		targets:  make(map[gpucore.SourceID]render.RenderTarget),
	}
}

// Ensure Host implements gpucore.Host.
var _ gpucore.Host = (*Host)(nil)

// next returns a fresh identifier. h.mu must be held.
func (h *Host) next() uint64 {
	h.nextID++
	return h.nextID
}

// Close stops the kernel workers. The Host must not render afterwards.
func (h *Host) Close() {
	if h.pool != nil {
		h.pool.Close()
	}
}

// rows spreads kernel rows across the worker pool.
func (h *Host) rows(height int, fn func(y0, y1 int)) {
	parallel.Rows(h.pool, height, fn)
}

// NewSourceID allocates an identifier for a source or filter.
func (h *Host) NewSourceID() gpucore.SourceID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return gpucore.SourceID(h.next())
}

// Attach makes parent the source self filters.
func (h *Host) Attach(self, parent gpucore.SourceID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.parents[self] = parent
}

// Detach removes the parent of self.
func (h *Host) Detach(self gpucore.SourceID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.parents, self)
}

// SetFrame sets the current frame of src. A nil img clears it.
func (h *Host) SetFrame(src gpucore.SourceID, img image.Image) {
	var rgba *image.RGBA
	if img != nil {
		var ok bool
		if rgba, ok = img.(*image.RGBA); !ok {
			b := img.Bounds()
			rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
			resample(rgba, img)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if rgba == nil {
		delete(h.frames, src)
		return
	}
	h.frames[src] = rgba
}

// OutputFormat returns the byte order targets are written in.
func (h *Host) OutputFormat() gputypes.TextureFormat {
	return render.OutputFormat(h.opts.handle)
}

// NewTarget returns a render target in the host's output format.
func (h *Host) NewTarget(width, height int) *render.PixmapTarget {
	t := render.NewPixmapTarget(width, height)
	t.SetFormat(h.OutputFormat())
	return t
}

// Render runs f for self with target as the output of its filter pass.
// target is left untouched unless the frame is rendered.
func (h *Host) Render(self gpucore.SourceID, target render.RenderTarget, f filter.Filter) filter.FrameResult {
	defer gpucore.Graphics(h)()

	h.mu.Lock()
	h.targets[self] = target
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.targets, self)
		h.active = nil
		h.mu.Unlock()
	}()

	return f.RenderFrame(gpucore.InvalidID)
}

// Stats returns a snapshot of the resource counters.
func (h *Host) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

// Texture returns the texture for id, or nil.
func (h *Host) Texture(id gpucore.TextureID) *Texture {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.textures[id]
}

// EnterGraphics implements gpucore.Host. Other goroutines block until
// the outermost LeaveGraphics; the holder may enter again.
func (h *Host) EnterGraphics() {
	h.gfx.Enter()
}

// LeaveGraphics implements gpucore.Host.
func (h *Host) LeaveGraphics() {
	if h.gfx.Leave() {
		return
	}
	h.mu.Lock()
	h.stats.Violations++
	h.mu.Unlock()
	vbg.Logger().Warn("softhost: LeaveGraphics without EnterGraphics")
}

// InGraphics reports whether the calling goroutine holds the graphics
// context.
func (h *Host) InGraphics() bool {
	return h.gfx.Held()
}

// checkGraphics records a violation if called outside the bracket.
// h.mu must be held.
func (h *Host) checkGraphics(op string) {
	if !h.gfx.Held() {
		h.stats.Violations++
		vbg.Logger().Warn("softhost: call outside graphics context", "op", op)
	}
}

// FilterParent implements gpucore.Host.
func (h *Host) FilterParent(self gpucore.SourceID) gpucore.SourceID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.parents[self]
}

// CreateTexture implements gpucore.Host.
func (h *Host) CreateTexture(w, ht uint32, format gpucore.TextureFormat, flags gpucore.TextureFlags) gpucore.TextureID {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkGraphics("CreateTexture")

	if w == 0 || ht == 0 || w > h.opts.maxTextureSize || ht > h.opts.maxTextureSize || format.BytesPerPixel() == 0 {
		vbg.Logger().Warn("softhost: texture rejected",
			"width", w, "height", ht, "format", format.String())
		return gpucore.InvalidID
	}

	id := gpucore.TextureID(h.next())
	h.textures[id] = newTexture(w, ht, format, flags)
	h.stats.TexturesCreated++
	return id
}

// DestroyTexture implements gpucore.Host.
func (h *Host) DestroyTexture(tex gpucore.TextureID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkGraphics("DestroyTexture")

	if _, ok := h.textures[tex]; !ok {
		return
	}
	delete(h.textures, tex)
	h.stats.TexturesDestroyed++
}

// SetImage implements gpucore.Host.
func (h *Host) SetImage(tex gpucore.TextureID, data []byte, rowStride uint32, flip bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkGraphics("SetImage")

	t, ok := h.textures[tex]
	if !ok {
		return
	}
	if !t.setImage(data, rowStride, flip) {
		vbg.Logger().Warn("softhost: short image upload",
			"texture", uint64(tex), "bytes", len(data), "stride", rowStride)
		return
	}
	h.stats.Uploads++
}

// LoadProgram implements gpucore.Host.
func (h *Host) LoadProgram(file string) gpucore.ProgramID {
	label := strings.TrimSuffix(path.Base(file), path.Ext(file))
	kernel, ok := h.opts.kernels[label]
	if !ok {
		vbg.Logger().Warn("softhost: no kernel for program", "path", file)
		return gpucore.InvalidID
	}

	// Compile outside the lock; naga may take a while.
	p, err := h.cache.Load(h.opts.fsys, file, h.opts.compile)
	if err != nil {
		vbg.Logger().Warn("softhost: program load failed", "path", file, "err", err)
		return gpucore.InvalidID
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkGraphics("LoadProgram")

	id := gpucore.ProgramID(h.next())
	h.programs[id] = &program{
		Program: p,
		kernel:  kernel,
		bound:   make(map[string]gpucore.TextureID),
	}
	h.stats.ProgramsLoaded++
	return id
}

// DestroyProgram implements gpucore.Host.
func (h *Host) DestroyProgram(prog gpucore.ProgramID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkGraphics("DestroyProgram")

	if _, ok := h.programs[prog]; !ok {
		return
	}
	delete(h.programs, prog)
	for id, p := range h.params {
		if p.prog == prog {
			delete(h.params, id)
		}
	}
	h.stats.ProgramsDestroyed++
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
	for id, existing := range h.params {
		if existing.prog == prog && existing.name == name {
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
	h.checkGraphics("SetTexture")

	p, ok := h.params[id]
	if !ok {
		return
	}
	if prog, ok := h.programs[p.prog]; ok {
		prog.bound[p.name] = tex
	}
}

// BeginFilter implements gpucore.Host. The pass starts only inside Render
// and only when the parent of self has a frame.
func (h *Host) BeginFilter(self gpucore.SourceID, _ gpucore.TextureFormat, _ gpucore.RenderFlags) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkGraphics("BeginFilter")

	target, ok := h.targets[self]
	if !ok {
		return false
	}
	frame, ok := h.frames[h.parents[self]]
	if !ok {
		return false
	}
	if target.Width() != frame.Bounds().Dx() || target.Height() != frame.Bounds().Dy() {
		vbg.Logger().Warn("softhost: target does not match frame size",
			"target_width", target.Width(), "target_height", target.Height(),
			"frame_width", frame.Bounds().Dx(), "frame_height", frame.Bounds().Dy())
		return false
	}
	h.active = &pass{self: self, frame: frame, target: target}
	return true
}

// EndFilter implements gpucore.Host. The program's kernel draws the parent
// frame into the target at (x, y).
func (h *Host) EndFilter(self gpucore.SourceID, prog gpucore.ProgramID, x, y uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkGraphics("EndFilter")

	ps := h.active
	h.active = nil
	if ps == nil || ps.self != self {
		vbg.Logger().Warn("softhost: EndFilter without BeginFilter", "source", uint64(self))
		return
	}
	p, ok := h.programs[prog]
	if !ok {
		return
	}

	bound := make(map[string]*Texture, len(p.bound))
	for name, tex := range p.bound {
		if t, ok := h.textures[tex]; ok {
			bound[name] = t
		}
	}

	fb := ps.frame.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, fb.Dx(), fb.Dy()))
	p.kernel(out, ps.frame, bound, h.rows)
	writeTarget(ps.target, out, int(x), int(y))
	h.stats.Passes++
}

// writeTarget copies src into target at (x, y), clipped to the target,
// in the target's byte order.
func writeTarget(target render.RenderTarget, src *image.RGBA, x, y int) {
	pix, stride := target.Pixels(), target.Stride()
	bgra := target.Format() == gputypes.TextureFormatBGRA8Unorm

	w := min(src.Bounds().Dx(), target.Width()-x)
	ht := min(src.Bounds().Dy(), target.Height()-y)
	if w <= 0 || ht <= 0 {
		return
	}
	for row := 0; row < ht; row++ {
		s := src.Pix[row*src.Stride : row*src.Stride+w*4]
		d := pix[(y+row)*stride+x*4 : (y+row)*stride+(x+w)*4]
		copy(d, s)
		if bgra {
			for i := 0; i < len(d); i += 4 {
				d[i], d[i+2] = d[i+2], d[i]
			}
		}
	}
}
