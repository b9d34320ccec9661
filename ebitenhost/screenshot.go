package ebitenhost

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// DefaultScreenshotDir is where screenshots are written unless
// WithScreenshotDir says otherwise.
const DefaultScreenshotDir = "screenshots"

// WithScreenshotDir sets the directory screenshots are written to.
func WithScreenshotDir(dir string) Option {
	return func(h *Host) {
		if dir != "" {
			h.screenshotDir = dir
		}
	}
}

// Screenshot queues a labeled screenshot to be captured once the current
// frame's render callbacks have drawn. The PNG is written to the screenshot
// directory with a timestamped filename. Safe to call from frame callbacks
// and from Replay.OnScreenshot.
func (h *Host) Screenshot(label string) {
	h.screenshots = append(h.screenshots, label)
}

// flushScreenshots captures the rendered frame for every queued label.
func (h *Host) flushScreenshots(screen *ebiten.Image) {
	if len(h.screenshots) == 0 {
		return
	}
	defer func() { h.screenshots = h.screenshots[:0] }()

	if err := os.MkdirAll(h.screenshotDir, 0o755); err != nil {
		h.log.Error("screenshot directory unavailable", zap.String("dir", h.screenshotDir), zap.Error(err))
		return
	}

	img := readScreen(screen)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range h.screenshots {
		path := filepath.Join(h.screenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			h.log.Error("screenshot failed", zap.String("label", label), zap.Error(err))
			continue
		}
		h.log.Info("screenshot saved", zap.String("path", path))
	}
}

// readScreen copies the screen into a straight-alpha image.
func readScreen(screen *ebiten.Image) *image.NRGBA {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	return unpremultiply(pixels, w, h)
}

// unpremultiply converts premultiplied RGBA bytes to an NRGBA image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
