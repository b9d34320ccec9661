package serenity

import (
	"encoding/json"
	"fmt"
)

// replayStep represents a single action in a replay script.
type replayStep struct {
	Action string      `json:"action"`
	Key    Key         `json:"key,omitempty"`
	X      float64     `json:"x,omitempty"`
	Y      float64     `json:"y,omitempty"`
	Button MouseButton `json:"button,omitempty"`
	Frames int         `json:"frames,omitempty"`
	Label  string      `json:"label,omitempty"`
}

// replayScript is the top-level JSON structure for a replay script.
type replayScript struct {
	Steps []replayStep `json:"steps"`
}

// Replay feeds scripted input events into an Input, one event per frame,
// for automated runs and tests. Attach it to a Loop with Attach.
//
// Supported actions:
//
//	keydown / keyup    {"key": "KeyA"}
//	move               {"x": 10, "y": 20}
//	mousedown / mouseup {"button": 0}
//	click              {"x": 10, "y": 20, "button": 0}  move, press, release over three frames
//	press              {"key": "Space"}                 keydown then keyup over two frames
//	wait               {"frames": 3}
//	screenshot         {"label": "after-click"}         calls the OnScreenshot hook
type Replay struct {
	steps      []replayStep
	cursor     int
	waitCount  int
	queue      []InputEvent
	done       bool
	screenshot func(label string)
}

// LoadReplay parses a JSON replay script.
func LoadReplay(jsonData []byte) (*Replay, error) {
	var script replayScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse replay script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse replay script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse replay script: step %d: %w", i, err)
		}
	}
	return &Replay{steps: script.Steps}, nil
}

func (st replayStep) validate() error {
	switch st.Action {
	case "keydown", "keyup", "press":
		if st.Key == "" {
			return fmt.Errorf("%s requires a key", st.Action)
		}
	case "move", "mousedown", "mouseup", "click", "wait", "screenshot":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// OnScreenshot sets the function called for "screenshot" steps, e.g.
// ebitenhost.Host.Screenshot. Without one those steps do nothing.
func (r *Replay) OnScreenshot(fn func(label string)) {
	r.screenshot = fn
}

// Done reports whether every step has been executed and every queued event
// dispatched.
func (r *Replay) Done() bool {
	return r.done
}

// Attach steps the replay from an update callback on loop, dispatching into
// in. The callback removes itself once the replay is done.
func (r *Replay) Attach(loop *Loop, in *Input) CallbackHandle {
	var h CallbackHandle
	h = loop.RegisterUpdate(func(float64) {
		r.Step(in)
		if r.done {
			h.Remove()
		}
	})
	return h
}

// Step advances the replay by one frame.
func (r *Replay) Step(in *Input) {
	if r.done {
		return
	}
	// Drain events queued by a multi-frame action before advancing.
	if len(r.queue) > 0 {
		r.dispatchNext(in)
		r.checkDone()
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		r.checkDone()
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "keydown":
		r.enqueue(InputEvent{Type: EventKeyDown, Key: st.Key})
	case "keyup":
		r.enqueue(InputEvent{Type: EventKeyUp, Key: st.Key})
	case "press":
		r.enqueue(
			InputEvent{Type: EventKeyDown, Key: st.Key},
			InputEvent{Type: EventKeyUp, Key: st.Key},
		)
	case "move":
		r.enqueue(InputEvent{Type: EventMouseMove, Position: Vector2{st.X, st.Y}})
	case "mousedown":
		r.enqueue(InputEvent{Type: EventMouseDown, Button: st.Button})
	case "mouseup":
		r.enqueue(InputEvent{Type: EventMouseUp, Button: st.Button})
	case "click":
		r.enqueue(
			InputEvent{Type: EventMouseMove, Position: Vector2{st.X, st.Y}},
			InputEvent{Type: EventMouseDown, Button: st.Button},
			InputEvent{Type: EventMouseUp, Button: st.Button},
		)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		if r.screenshot != nil {
			r.screenshot(st.Label)
		}
	}

	if len(r.queue) > 0 {
		r.dispatchNext(in)
	}
	r.checkDone()
}

func (r *Replay) enqueue(evs ...InputEvent) {
	r.queue = append(r.queue, evs...)
}

func (r *Replay) dispatchNext(in *Input) {
	ev := r.queue[0]
	copy(r.queue, r.queue[1:])
	r.queue = r.queue[:len(r.queue)-1]
	in.Dispatch(ev)
}

func (r *Replay) checkDone() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.queue) == 0 {
		r.done = true
	}
}
