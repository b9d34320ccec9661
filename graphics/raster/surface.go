// Package raster implements serenity.Surface on a CPU-side gg canvas.
// It renders without a window or GPU, which makes it suitable for
// snapshots, thumbnails and headless tests of render callbacks.
package raster

import (
	"image"
	"io"

	"github.com/gogpu/gg"
	"go.uber.org/zap"

	"github.com/phanxgames/serenity"
)

var _ serenity.Surface = (*Surface)(nil)

// Surface is an offscreen drawing target backed by a gg.Context.
type Surface struct {
	dc  *gg.Context
	log *zap.Logger
}

// Option configures a Surface.
type Option func(*Surface)

// WithLogger sets the logger used to report rasterizer failures.
func WithLogger(log *zap.Logger) Option {
	return func(s *Surface) {
		if log != nil {
			s.log = log
		}
	}
}

// New returns a transparent width x height surface.
func New(width, height int, opts ...Option) *Surface {
	s := &Surface{
		dc:  gg.NewContext(width, height),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.dc.Width() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.dc.Height() }

// Clear resets every pixel to transparent.
func (s *Surface) Clear() {
	s.dc.Clear()
}

// ClearColor fills every pixel with c.
func (s *Surface) ClearColor(c serenity.Color) {
	s.dc.ClearWithColor(gg.RGBA2(c.Normalized()))
}

// FillRect fills r with c.
func (s *Surface) FillRect(r serenity.Rect, c serenity.Color) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	s.dc.SetRGBA(c.Normalized())
	s.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	s.fill("rect")
}

// FillCircle fills a circle of the given radius around center with c.
func (s *Surface) FillCircle(center serenity.Vector2, radius float64, c serenity.Color) {
	if radius <= 0 {
		return
	}
	s.dc.SetRGBA(c.Normalized())
	s.dc.DrawCircle(center.X, center.Y, radius)
	s.fill("circle")
}

// DrawImage draws img scaled to fill dst. A zero-sized dst draws img at
// its natural size.
func (s *Surface) DrawImage(img image.Image, dst serenity.Rect) {
	if img == nil {
		return
	}
	s.dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:         dst.X,
		Y:         dst.Y,
		DstWidth:  dst.Width,
		DstHeight: dst.Height,
		Opacity:   1,
	})
}

func (s *Surface) fill(shape string) {
	if err := s.dc.Fill(); err != nil {
		s.log.Warn("fill failed", zap.String("shape", shape), zap.Error(err))
	}
}

// Image returns the current pixels.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// SavePNG writes the current pixels to path.
func (s *Surface) SavePNG(path string) error {
	return s.dc.SavePNG(path)
}

// EncodePNG writes the current pixels to w as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

// Close releases the canvas.
func (s *Surface) Close() error {
	return s.dc.Close()
}
