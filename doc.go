// Package vbg renders a precomputed segmentation mask onto a live video
// stream.
//
// # Overview
//
// vbg is the rendering half of a virtual background: some other component
// computes, every frame, a single-channel mask that tells subject from
// background. vbg consumes that mask inside a host media pipeline and
// composites it against the filtered source in one of two modes:
//
//   - Blend: the mask becomes the alpha channel of the source frame.
//   - Mask overlay: the mask itself is drawn as an opaque grayscale image.
//
// # Architecture
//
// The library is organized into:
//   - filter: the per-instance compositor (create, update, render, destroy)
//   - gpucore: the host capabilities the compositor consumes
//   - shader: embedded WGSL programs, compiled with naga
//   - mask: staging buffers, gray to RGBA expansion, mask sources
//   - settings: filter settings and the property description shown to users
//   - softhost: a CPU implementation of the host, used by tools and tests
//   - halhost: a host backed by a gogpu/wgpu HAL device
//
// # Logging
//
// vbg is silent by default. See [SetLogger].
package vbg

// Version is the current version of the library.
const Version = "0.3.0"
