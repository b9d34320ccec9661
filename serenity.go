package serenity

import (
	"image"
	"time"
)

// Version is the engine release string.
const Version = "1.0.0"

// Host is the platform substrate the engine runs on. It supplies a monotonic
// clock and a frame-callback primitive that invokes a function once before
// the next display refresh.
//
// All frame callbacks run on a single logical thread. A callback requested
// while another is running executes on a later frame, never re-entrantly.
type Host interface {
	// Now returns the monotonic time elapsed since the host's origin.
	// It never decreases.
	Now() time.Duration

	// RequestFrame schedules fn to run once on the next frame.
	RequestFrame(fn func())
}

// Key identifies a keyboard key by its physical code, using the DOM
// KeyboardEvent.code naming ("KeyA", "Digit1", "ArrowLeft", "Space",
// "ShiftLeft").
type Key string

// Common key codes.
const (
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeySpace      Key = "Space"
	KeyEnter      Key = "Enter"
	KeyEscape     Key = "Escape"
	KeyShiftLeft  Key = "ShiftLeft"
	KeyShiftRight Key = "ShiftRight"
	KeyCtrlLeft   Key = "ControlLeft"
	KeyCtrlRight  Key = "ControlRight"
	KeyAltLeft    Key = "AltLeft"
	KeyAltRight   Key = "AltRight"
	KeyMetaLeft   Key = "MetaLeft"
	KeyMetaRight  Key = "MetaRight"
)

// MouseButton identifies a mouse button by its index. The numbering matches
// MouseEvent.button: 0 is the primary button, 1 the auxiliary (wheel) button
// and 2 the secondary button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
	MouseButtonRight                     // secondary (right) mouse button
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Surface is a 2D raster drawing target. Implementations are pure
// pass-throughs to a platform canvas; see the ebitenhost and graphics/raster
// packages.
type Surface interface {
	Clear()
	FillRect(r Rect, c Color)
	FillCircle(center Vector2, radius float64, c Color)
	DrawImage(img image.Image, dst Rect)
}
