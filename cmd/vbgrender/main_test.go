package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/vbg/softhost"
)

func stubCompile(string) ([]uint32, error) {
	return []uint32{0x07230203}, nil
}

func writeFrame(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	path := filepath.Join(dir, "frame.png")
	if err := savePNG(path, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.png")
	cfg := config{
		framePath: writeFrame(t, dir, 40, 20),
		maskScale: 0.5,
		mode:      "blend",
		frames:    2,
		output:    out,
		lang:      "en",
		workers:   2,
		hostOpts:  []softhost.Option{softhost.WithCompiler(stubCompile)},
	}
	if err := run(cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("output size = %v, want 40x20", b)
	}
	// The ellipse mask keeps the center and clears the corners.
	if _, _, _, a := img.At(20, 10).RGBA(); a != 0xffff {
		t.Errorf("center alpha = %#x, want opaque", a)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("corner alpha = %#x, want transparent", a)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	frame := writeFrame(t, dir, 4, 4)

	tests := []struct {
		name string
		cfg  config
		want string
	}{
		{"missing frame flag", config{mode: "blend", frames: 1}, "missing -frame"},
		{"unreadable frame", config{framePath: filepath.Join(dir, "nope.png"), mode: "blend", frames: 1}, "load frame"},
		{"bad mode", config{framePath: frame, maskScale: 1, mode: "sepia", frames: 1}, "unknown -mode"},
		{"compile failure", config{
			framePath: frame, maskScale: 1, mode: "blend", frames: 1, workers: 1,
			hostOpts: []softhost.Option{softhost.WithCompiler(func(string) ([]uint32, error) {
				return nil, os.ErrInvalid
			})},
		}, "create"},
		{"no frames", config{
			framePath: frame, maskScale: 1, mode: "mask", frames: 0, workers: 1,
			hostOpts: []softhost.Option{softhost.WithCompiler(stubCompile)},
		}, "no frame rendered"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("run() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}
