// Package ebitenhost runs the serenity engine inside an Ebitengine game
// loop.
//
// Ebitengine calls Update at a fixed tick rate and Draw once per display
// refresh. Host pumps keyboard and mouse state into a serenity.Input from
// Update, and runs queued frame callbacks from Draw, so the engine's frames
// line up with refreshes and render callbacks can draw to Surface.
package ebitenhost

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/phanxgames/serenity"
)

var (
	_ serenity.Host = (*Host)(nil)
	_ ebiten.Game   = (*Host)(nil)
)

// mouseButtons maps the ebiten buttons the host tracks to serenity's
// MouseEvent.button numbering.
var mouseButtons = [...]struct {
	eb ebiten.MouseButton
	sb serenity.MouseButton
}{
	{ebiten.MouseButtonLeft, serenity.MouseButtonLeft},
	{ebiten.MouseButtonMiddle, serenity.MouseButtonMiddle},
	{ebiten.MouseButtonRight, serenity.MouseButtonRight},
}

// Host is a serenity.Host backed by Ebitengine. It also implements
// ebiten.Game; Run starts the window.
type Host struct {
	cfg    serenity.Config
	log    *zap.Logger
	origin time.Time

	pending []func()
	surface *Surface

	input     *serenity.Input
	keyBuf    []ebiten.Key
	lastMouse image.Point
	focused   bool
	quit      bool

	screenshotDir string
	screenshots   []string
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(log *zap.Logger) Option {
	return func(h *Host) {
		if log != nil {
			h.log = log
		}
	}
}

// New creates a host for a window described by cfg.
func New(cfg serenity.Config, opts ...Option) *Host {
	h := &Host{
		cfg:     cfg,
		log:     zap.NewNop(),
		origin:  time.Now(),
		surface: &Surface{},
		focused: true,

		screenshotDir: DefaultScreenshotDir,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// BindInput sets the sampler that receives keyboard and mouse events.
// Without a bound input, events are not polled.
func (h *Host) BindInput(in *serenity.Input) {
	h.input = in
}

// Surface returns the drawing surface for the current frame. It targets
// the screen only while frame callbacks run.
func (h *Host) Surface() *Surface {
	return h.surface
}

// Now returns the monotonic time since the host was created.
func (h *Host) Now() time.Duration {
	return time.Since(h.origin)
}

// RequestFrame queues fn for the next Draw.
func (h *Host) RequestFrame(fn func()) {
	h.pending = append(h.pending, fn)
}

// Quit ends Run after the current tick.
func (h *Host) Quit() {
	h.quit = true
}

// Run opens the window and blocks until it is closed or Quit is called.
func (h *Host) Run() error {
	ebiten.SetWindowTitle(h.cfg.Title)
	ebiten.SetWindowSize(h.cfg.Width, h.cfg.Height)
	ebiten.SetTPS(h.cfg.TargetFPS)
	h.log.Info("window opening",
		zap.String("title", h.cfg.Title),
		zap.Int("tps", h.cfg.TargetFPS),
	)
	err := ebiten.RunGame(h)
	h.log.Info("window closed")
	return err
}

// Update polls input. Implements ebiten.Game.
func (h *Host) Update() error {
	if h.quit {
		return ebiten.Termination
	}
	if h.input != nil {
		h.pollInput()
	}
	return nil
}

// Draw runs the frame callbacks queued since the previous refresh.
// Implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	h.surface.target = screen
	h.runFrame()
	h.surface.target = nil
	h.flushScreenshots(screen)
}

// Layout returns the configured logical screen size. Implements ebiten.Game.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.cfg.Width, h.cfg.Height
}

func (h *Host) runFrame() {
	batch := h.pending
	h.pending = nil
	for _, fn := range batch {
		fn()
	}
}

func (h *Host) pollInput() {
	// Release events are lost while unfocused; drop held state instead of
	// leaving keys stuck down.
	focused := ebiten.IsFocused()
	if h.focused && !focused {
		h.input.Reset()
	}
	h.focused = focused

	h.keyBuf = inpututil.AppendJustPressedKeys(h.keyBuf[:0])
	for _, k := range h.keyBuf {
		h.input.Dispatch(serenity.InputEvent{Type: serenity.EventKeyDown, Key: KeyCode(k)})
	}
	h.keyBuf = inpututil.AppendJustReleasedKeys(h.keyBuf[:0])
	for _, k := range h.keyBuf {
		h.input.Dispatch(serenity.InputEvent{Type: serenity.EventKeyUp, Key: KeyCode(k)})
	}

	mx, my := ebiten.CursorPosition()
	if p := image.Pt(mx, my); p != h.lastMouse {
		h.lastMouse = p
		h.input.Dispatch(serenity.InputEvent{
			Type:     serenity.EventMouseMove,
			Position: serenity.Vec2(float64(mx), float64(my)),
		})
	}

	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			h.input.Dispatch(serenity.InputEvent{Type: serenity.EventMouseDown, Button: b.sb})
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			h.input.Dispatch(serenity.InputEvent{Type: serenity.EventMouseUp, Button: b.sb})
		}
	}
}
