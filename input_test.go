package serenity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputKeyPressRelease(t *testing.T) {
	in := NewInput()
	assert.False(t, in.IsKeyPressed("KeyA"), "unseen key is not pressed")

	in.Dispatch(InputEvent{Type: EventKeyDown, Key: "KeyA"})
	assert.True(t, in.IsKeyPressed("KeyA"))
	assert.False(t, in.IsKeyPressed("KeyB"))

	in.Dispatch(InputEvent{Type: EventKeyUp, Key: "KeyA"})
	assert.False(t, in.IsKeyPressed("KeyA"))
	assert.Zero(t, in.PressedKeys())
}

func TestInputRepeatedKeyDown(t *testing.T) {
	in := NewInput()
	in.Dispatch(InputEvent{Type: EventKeyDown, Key: KeySpace})
	in.Dispatch(InputEvent{Type: EventKeyDown, Key: KeySpace})
	assert.Equal(t, 1, in.PressedKeys())

	in.Dispatch(InputEvent{Type: EventKeyUp, Key: KeySpace})
	assert.False(t, in.IsKeyPressed(KeySpace), "one release clears an auto-repeated key")
}

func TestInputMouse(t *testing.T) {
	in := NewInput()
	assert.Equal(t, Vector2{}, in.MousePosition())

	in.Dispatch(InputEvent{Type: EventMouseMove, Position: Vec2(120, 45)})
	pos := in.MousePosition()
	assert.Equal(t, Vec2(120, 45), pos)

	pos.X = 999
	assert.Equal(t, Vec2(120, 45), in.MousePosition(), "returned position is a copy")

	in.Dispatch(InputEvent{Type: EventMouseDown, Button: MouseButtonRight})
	assert.True(t, in.IsMouseButtonPressed(MouseButtonRight))
	assert.False(t, in.IsMouseButtonPressed(MouseButtonLeft))

	in.Dispatch(InputEvent{Type: EventMouseUp, Button: MouseButtonRight})
	assert.False(t, in.IsMouseButtonPressed(MouseButtonRight))
}

func TestInputModifiers(t *testing.T) {
	tests := []struct {
		name string
		keys []Key
		want KeyModifiers
	}{
		{"none", nil, 0},
		{"left shift", []Key{KeyShiftLeft}, ModShift},
		{"right ctrl", []Key{KeyCtrlRight}, ModCtrl},
		{"alt and meta", []Key{KeyAltLeft, KeyMetaRight}, ModAlt | ModMeta},
		{"all", []Key{KeyShiftRight, KeyCtrlLeft, KeyAltRight, KeyMetaLeft}, ModShift | ModCtrl | ModAlt | ModMeta},
		{"letters only", []Key{"KeyQ"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInput()
			for _, k := range tt.keys {
				in.Dispatch(InputEvent{Type: EventKeyDown, Key: k})
			}
			assert.Equal(t, tt.want, in.Modifiers())
		})
	}
}

func TestInputReset(t *testing.T) {
	in := NewInput()
	in.Dispatch(InputEvent{Type: EventKeyDown, Key: KeyArrowUp})
	in.Dispatch(InputEvent{Type: EventMouseDown, Button: MouseButtonLeft})
	in.Dispatch(InputEvent{Type: EventMouseMove, Position: Vec2(3, 4)})

	in.Reset()
	assert.False(t, in.IsKeyPressed(KeyArrowUp))
	assert.False(t, in.IsMouseButtonPressed(MouseButtonLeft))
	assert.Equal(t, Vec2(3, 4), in.MousePosition(), "pointer position survives reset")
}

func TestInputMousePositionIn(t *testing.T) {
	in := NewInput()
	in.Dispatch(InputEvent{Type: EventMouseMove, Position: Vec2(110, 20)})

	view := Scale(2, 2).Then(Translate(100, 0))
	assertVec(t, "local", in.MousePositionIn(view), Vec2(5, 10))
}

func TestInputStateIsReadOnlyView(t *testing.T) {
	in := NewInput()
	var state InputState = in
	in.Dispatch(InputEvent{Type: EventKeyDown, Key: KeyEnter})
	assert.True(t, state.IsKeyPressed(KeyEnter))
}

func TestInputEventTypeString(t *testing.T) {
	tests := map[InputEventType]string{
		EventKeyDown:       "keydown",
		EventKeyUp:         "keyup",
		EventMouseMove:     "mousemove",
		EventMouseDown:     "mousedown",
		EventMouseUp:       "mouseup",
		InputEventType(99): "unknown",
	}
	for typ, want := range tests {
		assert.Equal(t, want, typ.String())
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 5}
	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(30, 15))
	assert.False(t, r.Contains(31, 12))
	assert.False(t, r.Contains(15, 9))
}
