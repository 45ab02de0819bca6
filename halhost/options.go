package halhost

import (
	"io/fs"

	"github.com/gogpu/vbg/shader"
)

// Option configures a Host during creation.
type Option func(*options)

type options struct {
	fsys    fs.FS
	compile shader.CompileFunc
	runner  PassRunner
	wgsl    bool
	cache   *shader.Cache
}

func defaultOptions() options {
	return options{
		fsys:    shader.Files,
		compile: shader.Compile,
	}
}

// WithShaderFS sets the file system programs are loaded from.
func WithShaderFS(fsys fs.FS) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// WithCompiler replaces the WGSL to SPIR-V compiler.
func WithCompiler(c shader.CompileFunc) Option {
	return func(o *options) {
		o.compile = c
	}
}

// WithPassRunner sets the runner that executes filter passes.
func WithPassRunner(r PassRunner) Option {
	return func(o *options) {
		o.runner = r
	}
}

// WithWGSLModules makes shader modules from WGSL source instead of SPIR-V.
// Programs are still compiled once to validate them.
func WithWGSLModules(enabled bool) Option {
	return func(o *options) {
		o.wgsl = enabled
	}
}

// WithProgramCache shares a program cache between hosts.
func WithProgramCache(c *shader.Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}
