package ebitenhost

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/serenity"
)

var _ serenity.Surface = (*Surface)(nil)

// Surface draws onto an ebiten image. The host points it at the screen
// while frame callbacks run; outside a frame every call is a no-op.
//
// DrawImage accepts *ebiten.Image directly. Other image.Image values are
// uploaded once and cached by identity.
type Surface struct {
	target   *ebiten.Image
	uploaded map[image.Image]*ebiten.Image
}

// NewSurface returns a surface drawing onto target, for offscreen use.
func NewSurface(target *ebiten.Image) *Surface {
	return &Surface{target: target}
}

// Target returns the image currently drawn to, or nil outside a frame.
func (s *Surface) Target() *ebiten.Image {
	return s.target
}

// Clear makes the whole target transparent.
func (s *Surface) Clear() {
	if s.target == nil {
		return
	}
	s.target.Clear()
}

// FillRect fills r with c.
func (s *Surface) FillRect(r serenity.Rect, c serenity.Color) {
	if s.target == nil {
		return
	}
	vector.DrawFilledRect(s.target,
		float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
		c.NRGBA(), true)
}

// FillCircle fills a circle with c.
func (s *Surface) FillCircle(center serenity.Vector2, radius float64, c serenity.Color) {
	if s.target == nil {
		return
	}
	vector.DrawFilledCircle(s.target,
		float32(center.X), float32(center.Y), float32(radius),
		c.NRGBA(), true)
}

// DrawImage draws img stretched into dst.
func (s *Surface) DrawImage(img image.Image, dst serenity.Rect) {
	if s.target == nil || img == nil {
		return
	}
	src := s.ebitenImage(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	if w == 0 || h == 0 {
		return
	}
	m := serenity.Scale(dst.Width/float64(w), dst.Height/float64(h)).
		Then(serenity.Translate(dst.X, dst.Y))
	s.DrawImageTransformed(src, m)
}

// DrawImageTransformed draws img with an arbitrary affine transform.
func (s *Surface) DrawImageTransformed(img *ebiten.Image, m serenity.Matrix) {
	if s.target == nil || img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = GeoM(m)
	op.Filter = ebiten.FilterLinear
	s.target.DrawImage(img, op)
}

// GeoM converts a serenity matrix to an ebiten geometry matrix.
func GeoM(m serenity.Matrix) ebiten.GeoM {
	var g ebiten.GeoM
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			g.SetElement(i, j, m.At(i, j))
		}
	}
	return g
}

func (s *Surface) ebitenImage(img image.Image) *ebiten.Image {
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	if e, ok := s.uploaded[img]; ok {
		return e
	}
	if s.uploaded == nil {
		s.uploaded = make(map[image.Image]*ebiten.Image)
	}
	e := ebiten.NewImageFromImage(img)
	s.uploaded[img] = e
	return e
}
