package filter

import (
	"github.com/gogpu/vbg/gpucore"
	"github.com/gogpu/vbg/settings"
)

// ID is the identifier hosts register the filter under.
const ID = "virtualbg-render"

// OutputFlags describe what a filter produces.
type OutputFlags uint32

const (
	// OutputVideo marks a filter that draws video.
	OutputVideo OutputFlags = 1 << iota

	// OutputSRGB marks a filter that renders in sRGB-aware mode.
	OutputSRGB
)

// Filter is the per-instance contract a host binding drives.
// *Compositor implements it.
type Filter interface {
	Update(data *settings.Data)
	RenderFrame(effect gpucore.ProgramID) FrameResult
	Destroy()
}

var _ Filter = (*Compositor)(nil)

// Info is the registration record a host binding maps onto its own plugin
// mechanism.
type Info struct {
	ID          string
	OutputFlags OutputFlags

	// Name returns the localized display name.
	Name func(tr *settings.Translator) string

	// Create builds an instance attached to self.
	Create func(data *settings.Data, self gpucore.SourceID) (Filter, error)

	// Defaults writes default values into data.
	Defaults func(data *settings.Data)

	// Properties describes the editable settings.
	Properties func(tr *settings.Translator) *settings.Properties
}

// NewInfo returns the registration record for the filter. Every instance
// it creates shares host and source.
func NewInfo(host gpucore.Host, source gpucore.MaskSource, opts ...Option) Info {
	return Info{
		ID:          ID,
		OutputFlags: OutputVideo | OutputSRGB,
		Name: func(tr *settings.Translator) string {
			return tr.Text(settings.TextFilterName)
		},
		Create: func(data *settings.Data, self gpucore.SourceID) (Filter, error) {
			c, err := Create(host, source, data, self, opts...)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		Defaults:   Defaults,
		Properties: Properties,
	}
}

// Defaults sets the default render mode.
func Defaults(data *settings.Data) {
	data.SetDefaultString(SettingRenderMode, ModeBlendToken)
}

// DefaultSettings returns a settings store holding only the defaults.
func DefaultSettings() *settings.Data {
	d := settings.New()
	Defaults(d)
	return d
}

// Properties describes the render mode option as a two-item list.
func Properties(tr *settings.Translator) *settings.Properties {
	ps := settings.NewProperties()
	p := ps.AddList(SettingRenderMode, tr.Text(settings.TextRenderMode))
	p.AddString(tr.Text(settings.TextModeBlend), ModeBlendToken)
	p.AddString(tr.Text(settings.TextModeMask), ModeMaskToken)
	return ps
}
