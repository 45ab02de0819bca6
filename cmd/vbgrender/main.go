// Command vbgrender composites a segmentation mask over a frame on the CPU
// and writes the result as PNG.
//
// Usage:
//
//	vbgrender -frame frame.png -mask mask.png -mode blend -output out.png
//
// Without -mask an elliptical mask covering the frame center is used.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/vbg"
	"github.com/gogpu/vbg/filter"
	"github.com/gogpu/vbg/mask"
	"github.com/gogpu/vbg/settings"
	"github.com/gogpu/vbg/softhost"
)

// config holds the command line.
type config struct {
	framePath string
	maskPath  string
	maskScale float64
	mode      string
	frames    int
	output    string
	lang      string
	workers   int

	hostOpts []softhost.Option
}

func main() {
	var (
		cfg     config
		verbose bool
	)
	flag.StringVar(&cfg.framePath, "frame", "", "input frame image (PNG or JPEG)")
	flag.StringVar(&cfg.maskPath, "mask", "", "grayscale mask image; empty for a centered ellipse")
	flag.Float64Var(&cfg.maskScale, "mask-scale", 1, "mask resolution relative to its image")
	flag.StringVar(&cfg.mode, "mode", "blend", "render mode: blend or mask")
	flag.IntVar(&cfg.frames, "frames", 1, "number of frames to render")
	flag.StringVar(&cfg.output, "output", "out.png", "output file")
	flag.StringVar(&cfg.lang, "lang", "en", "language for display names")
	flag.IntVar(&cfg.workers, "workers", 0, "kernel goroutines; 0 uses all CPUs")
	flag.BoolVar(&verbose, "v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	vbg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

// run renders the frames and writes the output. Every resource it
// creates is released before it returns.
func run(cfg config) error {
	if cfg.framePath == "" {
		return errors.New("missing -frame")
	}
	frame, err := loadImage(cfg.framePath)
	if err != nil {
		return fmt.Errorf("load frame: %w", err)
	}

	masks, err := loadMask(cfg.maskPath, frame, cfg.maskScale)
	if err != nil {
		return fmt.Errorf("load mask: %w", err)
	}

	token, err := modeToken(cfg.mode)
	if err != nil {
		return err
	}

	tr := settings.ParseTranslator(cfg.lang)

	host := softhost.New(append([]softhost.Option{softhost.WithWorkers(cfg.workers)}, cfg.hostOpts...)...)
	defer host.Close()
	self, parent := host.NewSourceID(), host.NewSourceID()
	host.Attach(self, parent)
	host.SetFrame(parent, frame)

	info := filter.NewInfo(host, masks)
	data := settings.New()
	info.Defaults(data)
	data.SetString(filter.SettingRenderMode, token)

	f, err := info.Create(data, self)
	if err != nil {
		return fmt.Errorf("create %s: %w", info.Name(tr), err)
	}
	defer f.Destroy()

	b := frame.Bounds()
	target := host.NewTarget(b.Dx(), b.Dy())
	rendered := 0
	for i := 0; i < cfg.frames; i++ {
		res := host.Render(self, target, f)
		if !res.Rendered() {
			log.Printf("frame %d skipped: %v", i, res.Err)
			continue
		}
		rendered++
	}
	if rendered == 0 {
		return errors.New("no frame rendered")
	}

	if err := savePNG(cfg.output, target.Image()); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	st := host.Stats()
	log.Printf("%s: %d/%d frames (%s) saved to %s (%dx%d), %d uploads\n",
		info.Name(tr), rendered, cfg.frames, tr.Text(modeText(token)), cfg.output, b.Dx(), b.Dy(), st.Uploads)
	return nil
}

func modeToken(mode string) (string, error) {
	switch mode {
	case "blend":
		return filter.ModeBlendToken, nil
	case "mask":
		return filter.ModeMaskToken, nil
	default:
		return "", fmt.Errorf("unknown -mode %q", mode)
	}
}

func modeText(token string) string {
	if token == filter.ModeBlendToken {
		return settings.TextModeBlend
	}
	return settings.TextModeMask
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func loadMask(path string, frame image.Image, scale float64) (*mask.StaticSource, error) {
	src := image.Image(ellipse(frame.Bounds().Dx(), frame.Bounds().Dy()))
	if path != "" {
		img, err := loadImage(path)
		if err != nil {
			return nil, err
		}
		src = img
	}
	w := max(1, int(float64(src.Bounds().Dx())*scale))
	h := max(1, int(float64(src.Bounds().Dy())*scale))
	return mask.NewImageSource(src, w, h), nil
}

func ellipse(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	cx, cy := float64(w)/2, float64(h)/2
	rx, ry := cx*0.6, cy*0.8
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := (float64(x)-cx)/rx, (float64(y)-cy)/ry
			if dx*dx+dy*dy <= 1 {
				img.Pix[y*img.Stride+x] = 255
			}
		}
	}
	return img
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
