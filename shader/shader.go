package shader

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// Embedded program paths, relative to Files.
const (
	BlendPath = "shaders/virtualbg.wgsl"
	MaskPath  = "shaders/virtualbg-mask.wgsl"
)

// Files contains the embedded WGSL programs.
//
//go:embed shaders/*.wgsl
var Files embed.FS

// Shader errors.
var (
	// ErrEmptySource is returned when a program file is empty.
	ErrEmptySource = errors.New("vbg: shader source is empty")

	// ErrCompile is returned when WGSL to SPIR-V compilation fails.
	ErrCompile = errors.New("vbg: shader compilation failed")

	// ErrReflect is returned when the bindings of a program cannot be read.
	ErrReflect = errors.New("vbg: shader reflection failed")
)

// CompileFunc turns WGSL source into SPIR-V words.
type CompileFunc func(wgsl string) ([]uint32, error)

// Param is a resource binding declared by a program.
type Param struct {
	Name    string
	Group   uint32
	Binding uint32
	Type    string
}

// Program is a loaded shader program.
type Program struct {
	Label  string
	Source string
	SPIRV  []uint32
	Params []Param
}

// Param returns the named binding and whether it exists.
func (p *Program) Param(name string) (Param, bool) {
	for _, prm := range p.Params {
		if prm.Name == name {
			return prm, true
		}
	}
	return Param{}, false
}

// Compile compiles WGSL source to SPIR-V words.
func Compile(wgsl string) ([]uint32, error) {
	if strings.TrimSpace(wgsl) == "" {
		return nil, ErrEmptySource
	}
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// Load reads the program at name from fsys and compiles it.
// A nil compile function selects Compile.
func Load(fsys fs.FS, name string, compile CompileFunc) (*Program, error) {
	if compile == nil {
		compile = Compile
	}
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read shader %s: %w", name, err)
	}
	spirv, err := compile(string(src))
	if err != nil {
		return nil, fmt.Errorf("load shader %s: %w", name, err)
	}
	params, err := Params(string(src))
	if err != nil {
		return nil, fmt.Errorf("load shader %s: %w", name, err)
	}
	return &Program{
		Label:  strings.TrimSuffix(path.Base(name), path.Ext(name)),
		Source: string(src),
		SPIRV:  spirv,
		Params: params,
	}, nil
}

// Params lists the resource bindings declared in WGSL source, in
// declaration order. The source is parsed and lowered with naga, so only
// live module-scope declarations with @group/@binding are reported.
func Params(wgsl string) ([]Param, error) {
	ast, err := naga.Parse(wgsl)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReflect, err)
	}
	module, err := naga.LowerWithSource(ast, wgsl)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReflect, err)
	}

	params := make([]Param, 0, len(module.GlobalVariables))
	for _, gv := range module.GlobalVariables {
		if gv.Binding == nil {
			continue
		}
		params = append(params, Param{
			Name:    gv.Name,
			Group:   gv.Binding.Group,
			Binding: gv.Binding.Binding,
			Type:    typeName(module, gv.Type),
		})
	}
	return params, nil
}

// typeName renders a binding type in WGSL spelling where it matters for
// hosts: sampled 2D textures and samplers. Other types use their declared
// name.
func typeName(m *ir.Module, h ir.TypeHandle) string {
	if int(h) >= len(m.Types) {
		return ""
	}
	t := m.Types[h]
	switch inner := t.Inner.(type) {
	case ir.ImageType:
		if inner.Class != ir.ImageClassSampled || inner.Arrayed || inner.Multisampled {
			return "texture"
		}
		dim := map[ir.ImageDimension]string{
			ir.Dim1D: "1d", ir.Dim2D: "2d", ir.Dim3D: "3d", ir.DimCube: "cube",
		}[inner.Dim]
		kind := map[ir.ScalarKind]string{
			ir.ScalarFloat: "f32", ir.ScalarSint: "i32", ir.ScalarUint: "u32",
		}[inner.SampledKind]
		return "texture_" + dim + "<" + kind + ">"
	case ir.SamplerType:
		if inner.Comparison {
			return "sampler_comparison"
		}
		return "sampler"
	}
	return t.Name
}
