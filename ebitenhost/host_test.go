package ebitenhost

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/phanxgames/serenity"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		in   string
		want serenity.Key
	}{
		{"A", "KeyA"},
		{"Z", "KeyZ"},
		{"0", "Digit0"},
		{"Digit7", "Digit7"},
		{"ArrowLeft", "ArrowLeft"},
		{"ShiftLeft", "ShiftLeft"},
		{"Space", "Space"},
		{"F1", "F1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, keyName(tt.in))
		})
	}
}

func TestGeoMMatchesMatrix(t *testing.T) {
	m := serenity.Scale(2, 3).
		Then(serenity.Rotate(math.Pi / 2)).
		Then(serenity.Translate(10, 20))
	g := GeoM(m)

	for _, p := range []serenity.Vector2{{0, 0}, {1, 0}, {0, 1}, {-4, 2.5}} {
		gx, gy := g.Apply(p.X, p.Y)
		want := m.Apply(p)
		assert.InDelta(t, want.X, gx, 1e-9, "x for %v", p)
		assert.InDelta(t, want.Y, gy, 1e-9, "y for %v", p)
	}
}

func TestHostFrameQueue(t *testing.T) {
	h := New(serenity.DefaultConfig())

	var order []int
	h.RequestFrame(func() {
		order = append(order, 1)
		h.RequestFrame(func() { order = append(order, 3) })
	})
	h.RequestFrame(func() { order = append(order, 2) })

	h.runFrame()
	assert.Equal(t, []int{1, 2}, order, "callbacks requested during a frame wait for the next one")

	h.runFrame()
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestHostClockMonotonic(t *testing.T) {
	h := New(serenity.DefaultConfig())
	a := h.Now()
	time.Sleep(time.Millisecond)
	b := h.Now()
	assert.GreaterOrEqual(t, b, a)
}

func TestSurfaceNoTargetIsNoop(t *testing.T) {
	s := &Surface{}
	// None of these may panic without a target.
	s.Clear()
	s.FillRect(serenity.Rect{Width: 10, Height: 10}, serenity.ColorWhite)
	s.FillCircle(serenity.Vec2(5, 5), 3, serenity.ColorWhite)
	s.DrawImage(nil, serenity.Rect{})
	assert.Nil(t, s.Target())
}

func TestLayoutUsesConfig(t *testing.T) {
	cfg := serenity.DefaultConfig()
	cfg.Width, cfg.Height = 320, 200
	h := New(cfg)
	w, hh := h.Layout(1920, 1080)
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, hh)
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"initial", "initial"},
		{"after click", "after_click"},
		{"a/b\\c", "a_b_c"},
		{"  ", "unlabeled"},
		{"v1.2-final", "v1.2-final"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeLabel(tt.in), tt.in)
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		255, 0, 0, 255, // opaque red
		64, 32, 0, 128, // half-alpha premultiplied
		0, 0, 0, 0, // transparent
	}
	img := unpremultiply(pixels, 3, 1)
	assert.Equal(t, []byte{255, 0, 0, 255}, img.Pix[0:4])
	assert.Equal(t, []byte{127, 63, 0, 128}, img.Pix[4:8])
	assert.Equal(t, []byte{0, 0, 0, 0}, img.Pix[8:12])
}

func TestScreenshotQueue(t *testing.T) {
	h := New(serenity.DefaultConfig())
	assert.Equal(t, DefaultScreenshotDir, h.screenshotDir)

	h.Screenshot("one")
	h.Screenshot("two")
	assert.Equal(t, []string{"one", "two"}, h.screenshots)

	dir := t.TempDir()
	h = New(serenity.DefaultConfig(), WithScreenshotDir(dir))
	assert.Equal(t, dir, h.screenshotDir)
}
