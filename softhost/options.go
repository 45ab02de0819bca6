package softhost

import (
	"io/fs"

	"github.com/gogpu/vbg/render"
	"github.com/gogpu/vbg/shader"
)

// DefaultMaxTextureSize is the largest texture dimension New accepts by default.
const DefaultMaxTextureSize = 16384

// Option configures a Host during creation.
type Option func(*options)

type options struct {
	handle         render.DeviceHandle
	fsys           fs.FS
	compile        shader.CompileFunc
	kernels        map[string]Kernel
	maxTextureSize uint32
	cache          *shader.Cache
	workers        int
}

func defaultOptions() options {
	return options{
		handle:  render.NullDeviceHandle{},
		fsys:    shader.Files,
		compile: shader.Compile,
		kernels: map[string]Kernel{
			"virtualbg":      BlendKernel,
			"virtualbg-mask": OverlayKernel,
		},
		maxTextureSize: DefaultMaxTextureSize,
		workers:        1,
	}
}

// WithDeviceHandle sets the device the host presents frames for. Its
// surface format decides the byte order of render targets.
func WithDeviceHandle(h render.DeviceHandle) Option {
	return func(o *options) {
		o.handle = h
	}
}

// WithShaderFS sets the file system programs are loaded from.
// The default is shader.Files.
func WithShaderFS(fsys fs.FS) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// WithCompiler replaces the WGSL compiler. The default is shader.Compile.
func WithCompiler(c shader.CompileFunc) Option {
	return func(o *options) {
		o.compile = c
	}
}

// WithKernel registers the CPU kernel executed for programs whose label
// (file name without extension) is label.
func WithKernel(label string, k Kernel) Option {
	return func(o *options) {
		o.kernels[label] = k
	}
}

// WithMaxTextureSize limits texture dimensions. Larger requests fail.
func WithMaxTextureSize(n uint32) Option {
	return func(o *options) {
		o.maxTextureSize = n
	}
}

// WithProgramCache shares a program cache between hosts. By default each
// Host creates its own.
func WithProgramCache(c *shader.Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithWorkers sets how many goroutines kernels run on. 1 runs kernels on
// the rendering goroutine; 0 or less uses GOMAXPROCS. A Host with more
// than one worker must be closed.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
