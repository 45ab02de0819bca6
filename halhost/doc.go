// Package halhost implements gpucore.Host on a wgpu HAL device.
//
// Textures are hal textures with a default view, uploads go through
// hal.Queue.WriteTexture, and programs become hal shader modules built from
// naga's SPIR-V output or from the WGSL source.
//
// The filter render pass itself belongs to the application: it owns the
// pipeline, the parent frame, and the output attachment. A [PassRunner]
// supplied with [WithPassRunner] receives each pass with the program's
// module and the texture views bound to its parameters. Without a runner
// BeginFilter always declines.
package halhost
