package filter

import "fmt"

// Settings keys and tokens.
const (
	// SettingRenderMode is the settings key holding the render mode token.
	SettingRenderMode = "RenderMode"

	// ModeBlendToken selects RenderModeBlend.
	ModeBlendToken = "RenderModeBlend"

	// ModeMaskToken selects RenderModeMask. Any token other than
	// ModeBlendToken does the same.
	ModeMaskToken = "RenderModeMask"
)

// RenderMode selects how the mask is composited.
type RenderMode uint8

const (
	// RenderModeBlend uses the mask as the alpha channel of the parent.
	RenderModeBlend RenderMode = iota

	// RenderModeMask draws the mask as an opaque grayscale image.
	RenderModeMask
)

// String returns the settings token for the mode.
func (m RenderMode) String() string {
	switch m {
	case RenderModeBlend:
		return ModeBlendToken
	case RenderModeMask:
		return ModeMaskToken
	default:
		return fmt.Sprintf("RenderMode(%d)", m)
	}
}

// ParseRenderMode maps a settings token to a mode. It is total: every
// token other than ModeBlendToken selects RenderModeMask.
func ParseRenderMode(token string) RenderMode {
	if token == ModeBlendToken {
		return RenderModeBlend
	}
	return RenderModeMask
}
