package gpucore

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Resource IDs
//
// These opaque IDs represent host resources. IDs are uint64 to accommodate
// various backend handle sizes.

// SourceID is an opaque handle to a video source in the host pipeline.
type SourceID uint64

// TextureID is an opaque handle to a GPU texture.
type TextureID uint64

// ProgramID is an opaque handle to a loaded shader program.
type ProgramID uint64

// ParamID is an opaque handle to a named parameter slot of a program.
type ParamID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// TextureFormat specifies the pixel format of a texture.
type TextureFormat uint32

// Texture formats.
const (
	// TextureFormatA8 is a single 8-bit channel, used for masks.
	TextureFormatA8 TextureFormat = iota + 1

	// TextureFormatRGBA8 is 8-bit RGBA.
	TextureFormatRGBA8
)

// String returns a human-readable name for the format.
func (f TextureFormat) String() string {
	switch f {
	case TextureFormatA8:
		return "A8"
	case TextureFormatRGBA8:
		return "RGBA8"
	default:
		return fmt.Sprintf("Unknown(%d)", f)
	}
}

// BytesPerPixel returns the number of bytes per pixel for the format.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case TextureFormatA8:
		return 1
	default:
		return 4
	}
}

// GPUFormat converts to the WebGPU texture format backing this format.
// A8 is stored as R8Unorm; shaders read the mask from the red channel.
func (f TextureFormat) GPUFormat() gputypes.TextureFormat {
	switch f {
	case TextureFormatA8:
		return gputypes.TextureFormatR8Unorm
	case TextureFormatRGBA8:
		return gputypes.TextureFormatRGBA8Unorm
	default:
		return gputypes.TextureFormatUndefined
	}
}

// TextureFlags modify how a texture is created.
type TextureFlags uint32

const (
	// TextureDynamic marks a texture whose contents are replaced every frame.
	TextureDynamic TextureFlags = 1 << iota
)

// RenderFlags modify how a filter render pass is started.
type RenderFlags uint32

const (
	// AllowDirectRendering lets the host draw the parent straight into the
	// output instead of rendering it to an intermediate texture first.
	AllowDirectRendering RenderFlags = 1 << iota
)
