package filter

import "errors"

// Create errors.
var (
	// ErrNilHost is returned when Create is called without a host or mask source.
	ErrNilHost = errors.New("vbg: nil host or mask source")

	// ErrShaderLoad is returned when a shader program cannot be loaded.
	ErrShaderLoad = errors.New("vbg: shader program load failed")
)

// Per-frame errors, reported through FrameResult.
var (
	// ErrNotReady is reported when the compositor has no programs, either
	// because it was destroyed or never fully created.
	ErrNotReady = errors.New("vbg: compositor not ready")

	// ErrNoParent is reported while the filter is not attached to a source.
	ErrNoParent = errors.New("vbg: filter parent unavailable")

	// ErrNoMask is reported while the mask source has a zero-area mask.
	ErrNoMask = errors.New("vbg: mask not available")

	// ErrTextureCreate is reported when a mask texture could not be created.
	ErrTextureCreate = errors.New("vbg: texture creation failed")

	// ErrRenderPassUnavailable is reported when the host declines to start
	// the filter render pass.
	ErrRenderPassUnavailable = errors.New("vbg: render pass unavailable")

	// ErrUnknownRenderMode is reported for a render mode outside the enum.
	ErrUnknownRenderMode = errors.New("vbg: unknown render mode")

	// ErrUnexpectedFault is reported when the render path panics.
	ErrUnexpectedFault = errors.New("vbg: unexpected fault in render")
)
