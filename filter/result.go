package filter

// FrameStatus tells whether a frame was drawn.
type FrameStatus uint8

const (
	// FrameSkipped means nothing was drawn for this frame.
	FrameSkipped FrameStatus = iota

	// FrameRendered means the filter render pass ran.
	FrameRendered
)

// String returns a human-readable name for the status.
func (s FrameStatus) String() string {
	if s == FrameRendered {
		return "rendered"
	}
	return "skipped"
}

// FrameResult is the outcome of one RenderFrame call.
type FrameResult struct {
	Status FrameStatus

	// Err explains a skipped frame. It is nil for rendered frames.
	Err error
}

// Rendered reports whether the frame was drawn.
func (r FrameResult) Rendered() bool {
	return r.Status == FrameRendered
}

func rendered() FrameResult { return FrameResult{Status: FrameRendered} }

func skipped(err error) FrameResult { return FrameResult{Status: FrameSkipped, Err: err} }
