package filter

import "github.com/gogpu/vbg/shader"

// Option configures a Compositor during creation.
//
// Example:
//
//	c, err := filter.Create(host, masks, data, self,
//	    filter.WithProgramPaths("fx/blend.wgsl", "fx/mask.wgsl"))
type Option func(*options)

type options struct {
	blendPath string
	maskPath  string
	paramName string
}

func defaultOptions() options {
	return options{
		blendPath: shader.BlendPath,
		maskPath:  shader.MaskPath,
		paramName: "mask",
	}
}

// WithProgramPaths overrides the paths the host loads the blend and mask
// overlay programs from.
func WithProgramPaths(blend, mask string) Option {
	return func(o *options) {
		o.blendPath = blend
		o.maskPath = mask
	}
}

// WithMaskParam overrides the name of the program parameter the mask
// texture is bound to. The default is "mask".
func WithMaskParam(name string) Option {
	return func(o *options) {
		o.paramName = name
	}
}
