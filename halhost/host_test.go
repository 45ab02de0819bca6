package halhost

import (
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/vbg/filter"
	"github.com/gogpu/vbg/gpucore"
	"github.com/gogpu/vbg/mask"
	"github.com/gogpu/vbg/settings"
)

func stubCompile(string) ([]uint32, error) {
	return []uint32{0x07230203}, nil
}

// createNoopDevice creates a noop device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		t.Fatal("no adapters available")
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

type recordingRunner struct {
	decline bool
	begins  int
	passes  []Pass
	format  gputypes.TextureFormat
}

func (r *recordingRunner) BeginPass(_, _ gpucore.SourceID, format gputypes.TextureFormat) bool {
	r.begins++
	r.format = format
	return !r.decline
}

func (r *recordingRunner) Draw(p Pass) {
	r.passes = append(r.passes, p)
}

func newHost(t *testing.T, opts ...Option) *Host {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)
	opts = append([]Option{WithCompiler(stubCompile)}, opts...)
	h, err := New(device, queue, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return h
}

func TestNewNilDevice(t *testing.T) {
	if _, err := New(nil, nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("New(nil, nil) err = %v, want ErrNilDevice", err)
	}
}

func TestTextures(t *testing.T) {
	h := newHost(t)
	defer gpucore.Graphics(h)()

	tests := []struct {
		name   string
		w, h   uint32
		format gpucore.TextureFormat
		valid  bool
	}{
		{"a8", 64, 32, gpucore.TextureFormatA8, true},
		{"rgba8", 64, 32, gpucore.TextureFormatRGBA8, true},
		{"zero", 0, 32, gpucore.TextureFormatA8, false},
		{"unknown format", 8, 8, gpucore.TextureFormat(99), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := h.CreateTexture(tt.w, tt.h, tt.format, gpucore.TextureDynamic)
			if (id != gpucore.InvalidID) != tt.valid {
				t.Fatalf("CreateTexture() = %d, valid = %v", id, tt.valid)
			}
			if !tt.valid {
				return
			}
			stride := tt.w * uint32(tt.format.BytesPerPixel())
			h.SetImage(id, make([]byte, stride*tt.h), stride, false)
			h.SetImage(id, make([]byte, stride*tt.h), stride, true)
			h.DestroyTexture(id)
		})
	}

	st := h.Stats()
	if st.TexturesCreated != 2 || st.TexturesDestroyed != 2 {
		t.Errorf("stats = %+v, want 2 created and destroyed", st)
	}
	if st.Uploads != 4 {
		t.Errorf("Uploads = %d, want 4", st.Uploads)
	}
}

func TestShortUploadIgnored(t *testing.T) {
	h := newHost(t)
	defer gpucore.Graphics(h)()

	id := h.CreateTexture(4, 4, gpucore.TextureFormatRGBA8, 0)
	h.SetImage(id, make([]byte, 10), 16, false)
	if st := h.Stats(); st.Uploads != 0 {
		t.Errorf("Uploads = %d, want 0", st.Uploads)
	}
}

func TestPrograms(t *testing.T) {
	for _, wgsl := range []bool{false, true} {
		h := newHost(t, WithWGSLModules(wgsl))
		prog := h.LoadProgram("shaders/virtualbg.wgsl")
		if prog == gpucore.InvalidID {
			t.Fatalf("LoadProgram(wgsl=%v) = InvalidID", wgsl)
		}
		if h.ParamByName(prog, "mask") == gpucore.InvalidID {
			t.Error("ParamByName(mask) = InvalidID")
		}
		if h.ParamByName(prog, "missing") != gpucore.InvalidID {
			t.Error("ParamByName(missing) is valid")
		}
		h.DestroyProgram(prog)
		h.DestroyProgram(prog)
		if st := h.Stats(); st.ProgramsLoaded != 1 || st.ProgramsDestroyed != 1 {
			t.Errorf("stats = %+v, want one program loaded and destroyed", st)
		}
	}

	h := newHost(t)
	if id := h.LoadProgram("shaders/missing.wgsl"); id != gpucore.InvalidID {
		t.Errorf("LoadProgram(missing) = %d, want InvalidID", id)
	}
}

func TestCompositorOnHAL(t *testing.T) {
	runner := &recordingRunner{}
	h := newHost(t, WithPassRunner(runner))
	const self, parent gpucore.SourceID = 1000, 2000
	h.Attach(self, parent)

	masks := mask.NewStaticSource(4, 4, make([]byte, 16))
	data := settings.New()
	data.SetString(filter.SettingRenderMode, filter.ModeBlendToken)
	c, err := filter.Create(h, masks, data, self)
	if err != nil {
		t.Fatalf("filter.Create() error = %v", err)
	}

	if res := c.RenderFrame(gpucore.InvalidID); !res.Rendered() {
		t.Fatalf("RenderFrame() = %+v, want rendered", res)
	}
	if len(runner.passes) != 1 {
		t.Fatalf("passes = %d, want 1", len(runner.passes))
	}
	p := runner.passes[0]
	if p.Self != self || p.Parent != parent {
		t.Errorf("pass sources = %d/%d, want %d/%d", p.Self, p.Parent, self, parent)
	}
	if p.Program.Label != "virtualbg" {
		t.Errorf("pass program = %q, want virtualbg", p.Program.Label)
	}
	if _, ok := p.Views["mask"]; !ok {
		t.Error("pass has no mask view")
	}
	if runner.format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("pass format = %v, want RGBA8Unorm", runner.format)
	}

	c.Update(settings.New())
	if res := c.RenderFrame(gpucore.InvalidID); !res.Rendered() {
		t.Fatalf("RenderFrame() in mask mode = %+v", res)
	}
	if got := runner.passes[1].Program.Label; got != "virtualbg-mask" {
		t.Errorf("mask pass program = %q, want virtualbg-mask", got)
	}

	c.Destroy()
	st := h.Stats()
	if st.TexturesCreated != st.TexturesDestroyed || st.ProgramsLoaded != st.ProgramsDestroyed {
		t.Errorf("resources leaked: %+v", st)
	}
}

func TestBeginFilterDeclines(t *testing.T) {
	t.Run("no runner", func(t *testing.T) {
		h := newHost(t)
		h.Attach(1, 2)
		if h.BeginFilter(1, gpucore.TextureFormatRGBA8, 0) {
			t.Error("BeginFilter() = true without a runner")
		}
	})
	t.Run("runner declines", func(t *testing.T) {
		runner := &recordingRunner{decline: true}
		h := newHost(t, WithPassRunner(runner))
		h.Attach(1, 2)
		if h.BeginFilter(1, gpucore.TextureFormatRGBA8, 0) {
			t.Error("BeginFilter() = true after runner declined")
		}
		h.EndFilter(1, 1, 0, 0)
		if len(runner.passes) != 0 {
			t.Error("Draw called without a pass")
		}
	})
	t.Run("not attached", func(t *testing.T) {
		runner := &recordingRunner{}
		h := newHost(t, WithPassRunner(runner))
		if h.BeginFilter(1, gpucore.TextureFormatRGBA8, 0) {
			t.Error("BeginFilter() = true for unattached filter")
		}
		if runner.begins != 0 {
			t.Error("runner consulted for unattached filter")
		}
	})
}

func TestGraphicsExcludesOtherGoroutines(t *testing.T) {
	h := newHost(t)
	h.EnterGraphics()
	h.EnterGraphics()
	if !h.InGraphics() {
		t.Fatal("InGraphics() = false while held")
	}

	entered := make(chan struct{})
	go func() {
		h.EnterGraphics()
		close(entered)
		h.LeaveGraphics()
	}()

	h.LeaveGraphics()
	select {
	case <-entered:
		t.Fatal("second goroutine entered graphics while the first holds it")
	case <-time.After(50 * time.Millisecond):
	}

	h.LeaveGraphics()
	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("second goroutine never entered graphics")
	}
	if h.InGraphics() {
		t.Error("InGraphics() = true after balanced leaves")
	}
}
