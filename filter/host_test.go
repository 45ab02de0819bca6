package filter

import (
	"github.com/gogpu/vbg/gpucore"
)

// texRecord tracks one texture created through fakeHost.
type texRecord struct {
	width, height uint32
	format        gpucore.TextureFormat
	flags         gpucore.TextureFlags
	destroyed     bool
}

type uploadRecord struct {
	tex    gpucore.TextureID
	data   []byte
	stride uint32
}

type passRecord struct {
	prog gpucore.ProgramID
	tex  gpucore.TextureID
}

// fakeHost implements gpucore.Host and records every call.
type fakeHost struct {
	parent      gpucore.SourceID
	parentCalls int

	nextID uint64
	depth  int

	// GPU calls made outside EnterGraphics/LeaveGraphics.
	outsideGraphics int

	textures     map[gpucore.TextureID]*texRecord
	created      []gpucore.TextureID
	texDestroyed int
	failTextures map[gpucore.TextureFormat]bool

	programs      map[gpucore.ProgramID]string
	progLoaded    int
	progDestroyed int
	failLoad      map[string]bool
	noParam       map[string]bool
	params        map[gpucore.ParamID]gpucore.ProgramID
	bound         map[gpucore.ParamID]gpucore.TextureID

	uploads     []uploadRecord
	declinePass bool
	begins      int
	passes      []passRecord
}

func newFakeHost(parent gpucore.SourceID) *fakeHost {
	return &fakeHost{
		parent:       parent,
		textures:     make(map[gpucore.TextureID]*texRecord),
		failTextures: make(map[gpucore.TextureFormat]bool),
		programs:     make(map[gpucore.ProgramID]string),
		failLoad:     make(map[string]bool),
		noParam:      make(map[string]bool),
		params:       make(map[gpucore.ParamID]gpucore.ProgramID),
		bound:        make(map[gpucore.ParamID]gpucore.TextureID),
	}
}

func (h *fakeHost) id() uint64 {
	h.nextID++
	return h.nextID
}

func (h *fakeHost) checkGraphics() {
	if h.depth <= 0 {
		h.outsideGraphics++
	}
}

func (h *fakeHost) EnterGraphics() { h.depth++ }
func (h *fakeHost) LeaveGraphics() { h.depth-- }

func (h *fakeHost) FilterParent(gpucore.SourceID) gpucore.SourceID {
	h.parentCalls++
	return h.parent
}

func (h *fakeHost) CreateTexture(w, ht uint32, format gpucore.TextureFormat, flags gpucore.TextureFlags) gpucore.TextureID {
	h.checkGraphics()
	if h.failTextures[format] {
		return gpucore.InvalidID
	}
	id := gpucore.TextureID(h.id())
	h.textures[id] = &texRecord{width: w, height: ht, format: format, flags: flags}
	h.created = append(h.created, id)
	return id
}

func (h *fakeHost) DestroyTexture(tex gpucore.TextureID) {
	h.checkGraphics()
	if rec, ok := h.textures[tex]; ok && !rec.destroyed {
		rec.destroyed = true
		h.texDestroyed++
	}
}

func (h *fakeHost) SetImage(tex gpucore.TextureID, data []byte, stride uint32, _ bool) {
	h.checkGraphics()
	buf := make([]byte, len(data))
	copy(buf, data)
	h.uploads = append(h.uploads, uploadRecord{tex: tex, data: buf, stride: stride})
}

func (h *fakeHost) LoadProgram(path string) gpucore.ProgramID {
	h.checkGraphics()
	if h.failLoad[path] {
		return gpucore.InvalidID
	}
	id := gpucore.ProgramID(h.id())
	h.programs[id] = path
	h.progLoaded++
	return id
}

func (h *fakeHost) DestroyProgram(prog gpucore.ProgramID) {
	h.checkGraphics()
	if _, ok := h.programs[prog]; ok {
		delete(h.programs, prog)
		h.progDestroyed++
	}
}

func (h *fakeHost) ParamByName(prog gpucore.ProgramID, name string) gpucore.ParamID {
	if h.noParam[h.programs[prog]] || name != "mask" {
		return gpucore.InvalidID
	}
	id := gpucore.ParamID(h.id())
	h.params[id] = prog
	return id
}

func (h *fakeHost) SetTexture(param gpucore.ParamID, tex gpucore.TextureID) {
	h.bound[param] = tex
}

func (h *fakeHost) BeginFilter(gpucore.SourceID, gpucore.TextureFormat, gpucore.RenderFlags) bool {
	h.begins++
	return !h.declinePass
}

func (h *fakeHost) EndFilter(_ gpucore.SourceID, prog gpucore.ProgramID, _, _ uint32) {
	var tex gpucore.TextureID
	for param, p := range h.params {
		if p == prog {
			tex = h.bound[param]
		}
	}
	h.passes = append(h.passes, passRecord{prog: prog, tex: tex})
}

// liveTextures returns the textures created and not yet destroyed.
func (h *fakeHost) liveTextures() []*texRecord {
	var live []*texRecord
	for _, id := range h.created {
		if rec := h.textures[id]; !rec.destroyed {
			live = append(live, rec)
		}
	}
	return live
}

var _ gpucore.Host = (*fakeHost)(nil)

// panicSource is a mask source whose FillMask panics.
type panicSource struct {
	width, height uint32
}

func (s *panicSource) MaskWidth(gpucore.SourceID) uint32  { return s.width }
func (s *panicSource) MaskHeight(gpucore.SourceID) uint32 { return s.height }
func (s *panicSource) FillMask(gpucore.SourceID, []byte)  { panic("mask source crashed") }
