// Package filter implements the mask compositing filter.
//
// A [Compositor] is created once per filter attachment. Every output frame
// the host calls [Compositor.RenderFrame], which pulls the current mask from
// the parent source, keeps the mask textures and staging buffers sized to
// it, uploads the mask, and runs the filter render pass with the program
// selected by the render mode:
//
//   - [RenderModeBlend] draws the parent with the mask as alpha.
//   - [RenderModeMask] draws the mask itself as an opaque grayscale image.
//
// Per-frame failures never propagate to the host. RenderFrame reports them
// in its [FrameResult] and the next frame starts from the state left behind.
//
// Hosts register the filter through [NewInfo], which bundles the create,
// update, render, destroy, defaults and properties callbacks.
package filter
