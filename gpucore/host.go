package gpucore

// MaskSource produces the per-frame segmentation mask of a video source.
//
// Width and height may change between frames and are zero until the source
// has produced its first mask.
type MaskSource interface {
	// MaskWidth returns the current mask width in pixels.
	MaskWidth(src SourceID) uint32

	// MaskHeight returns the current mask height in pixels.
	MaskHeight(src SourceID) uint32

	// FillMask copies width*height single-channel bytes into dst.
	// dst is owned by the caller.
	FillMask(src SourceID, dst []byte)
}

// Host is the graphics and pipeline surface a filter runs inside.
//
// Texture, program, and render-pass calls are only valid between
// EnterGraphics and LeaveGraphics.
type Host interface {
	// EnterGraphics acquires the graphics context. Calls nest.
	EnterGraphics()

	// LeaveGraphics releases one level of the graphics context.
	LeaveGraphics()

	// FilterParent returns the source a filter is attached to, or
	// InvalidID if the filter is not attached yet.
	FilterParent(self SourceID) SourceID

	// CreateTexture creates a width x height texture.
	// It returns InvalidID if the texture cannot be created.
	CreateTexture(width, height uint32, format TextureFormat, flags TextureFlags) TextureID

	// DestroyTexture releases a texture. Invalid IDs are ignored.
	DestroyTexture(tex TextureID)

	// SetImage replaces the texture contents. rowStride is the number of
	// bytes per row in data.
	SetImage(tex TextureID, data []byte, rowStride uint32, flip bool)

	// LoadProgram loads and compiles a shader program from path.
	// It returns InvalidID if loading or compilation fails.
	LoadProgram(path string) ProgramID

	// DestroyProgram releases a program. Invalid IDs are ignored.
	DestroyProgram(prog ProgramID)

	// ParamByName returns the named parameter slot of a program, or
	// InvalidID if the program has no such parameter.
	ParamByName(prog ProgramID, name string) ParamID

	// SetTexture binds a texture to a parameter slot.
	SetTexture(param ParamID, tex TextureID)

	// BeginFilter starts a filter render pass for self. It returns false
	// if the pass cannot start, for example because the parent has no
	// frame yet.
	BeginFilter(self SourceID, format TextureFormat, flags RenderFlags) bool

	// EndFilter draws the parent through prog and finishes the pass.
	EndFilter(self SourceID, prog ProgramID, x, y uint32)
}

// Graphics enters the graphics context and returns the matching release.
//
//	defer gpucore.Graphics(host)()
func Graphics(h Host) func() {
	h.EnterGraphics()
	return h.LeaveGraphics
}
