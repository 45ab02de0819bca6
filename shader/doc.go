// Package shader holds the WGSL programs used by the mask compositor and
// the helpers hosts use to load them.
//
// Two programs are embedded in [Files]:
//   - [BlendPath]: multiplies the frame alpha by the mask.
//   - [MaskPath]: draws the RGBA-expanded mask as an opaque image.
//
// Both declare a "frame" texture (the filtered parent, bound by the host)
// and a "mask" texture (bound by the compositor every frame). Programs are
// compiled to SPIR-V with naga when they are loaded.
package shader
