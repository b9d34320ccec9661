package serenity

// InputEventType identifies a kind of host input event.
type InputEventType uint8

const (
	EventKeyDown   InputEventType = iota // a key was pressed
	EventKeyUp                           // a key was released
	EventMouseMove                       // the pointer moved
	EventMouseDown                       // a mouse button was pressed
	EventMouseUp                         // a mouse button was released
)

func (t InputEventType) String() string {
	switch t {
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventMouseMove:
		return "mousemove"
	case EventMouseDown:
		return "mousedown"
	case EventMouseUp:
		return "mouseup"
	default:
		return "unknown"
	}
}

// InputEvent is a single host input event. Only the fields relevant to Type
// are read: Key for key events, Position for EventMouseMove, Button for
// button events.
type InputEvent struct {
	Type     InputEventType
	Key      Key
	Position Vector2
	Button   MouseButton
}

// InputState is the read-only view of the input sampler handed to game
// code.
type InputState interface {
	IsKeyPressed(key Key) bool
	MousePosition() Vector2
	IsMouseButtonPressed(button MouseButton) bool
	Modifiers() KeyModifiers
}

var _ InputState = (*Input)(nil)

// Input holds the live key and mouse state. It is an event-driven sampler:
// state changes only when a host adapter calls Dispatch, and every query is
// a pure read.
type Input struct {
	keys    map[Key]bool
	mouse   Vector2
	buttons map[MouseButton]bool
}

// NewInput returns an input sampler with nothing pressed and the pointer at
// the origin.
func NewInput() *Input {
	return &Input{
		keys:    make(map[Key]bool),
		buttons: make(map[MouseButton]bool),
	}
}

// Dispatch applies a host input event. It is meant for host adapters;
// game code should read state through InputState.
func (in *Input) Dispatch(ev InputEvent) {
	switch ev.Type {
	case EventKeyDown:
		in.keys[ev.Key] = true
	case EventKeyUp:
		delete(in.keys, ev.Key)
	case EventMouseMove:
		in.mouse = ev.Position
	case EventMouseDown:
		in.buttons[ev.Button] = true
	case EventMouseUp:
		delete(in.buttons, ev.Button)
	}
}

// Reset releases every key and button, e.g. after the window loses focus
// and release events will never arrive. The pointer position is kept.
func (in *Input) Reset() {
	clear(in.keys)
	clear(in.buttons)
}

// IsKeyPressed reports whether key is held down. Keys never seen are not
// pressed.
func (in *Input) IsKeyPressed(key Key) bool {
	return in.keys[key]
}

// MousePosition returns the last reported pointer position. The result is
// a copy; changing it does not affect the sampler.
func (in *Input) MousePosition() Vector2 {
	return in.mouse
}

// IsMouseButtonPressed reports whether button is held down.
func (in *Input) IsMouseButtonPressed(button MouseButton) bool {
	return in.buttons[button]
}

// PressedKeys returns the number of keys currently held.
func (in *Input) PressedKeys() int {
	return len(in.keys)
}

// Modifiers returns the modifier keys currently held, derived from the left
// and right variants of each modifier.
func (in *Input) Modifiers() KeyModifiers {
	var mods KeyModifiers
	if in.keys[KeyShiftLeft] || in.keys[KeyShiftRight] {
		mods |= ModShift
	}
	if in.keys[KeyCtrlLeft] || in.keys[KeyCtrlRight] {
		mods |= ModCtrl
	}
	if in.keys[KeyAltLeft] || in.keys[KeyAltRight] {
		mods |= ModAlt
	}
	if in.keys[KeyMetaLeft] || in.keys[KeyMetaRight] {
		mods |= ModMeta
	}
	return mods
}

// MousePositionIn returns the pointer position converted into the local
// space of a transform whose world matrix is m, e.g. a camera's view.
func (in *Input) MousePositionIn(m Matrix) Vector2 {
	inv, _ := m.Invert()
	return inv.Apply(in.mouse)
}
