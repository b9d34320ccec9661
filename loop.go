package serenity

import (
	"time"

	"go.uber.org/zap"
)

// LoopState is the run state of a Loop.
type LoopState uint8

const (
	Stopped LoopState = iota // initial state; no frames are scheduled
	Running                  // frames are scheduled on the host
)

func (s LoopState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

type updateEntry struct {
	id      uint32
	fn      func(dt float64)
	removed bool
}

type renderEntry struct {
	id      uint32
	fn      func()
	removed bool
}

type callbackKind uint8

const (
	callbackUpdate callbackKind = iota
	callbackRender
)

// Loop is the frame scheduler. Each frame it measures the time since the
// previous frame, calls every update callback with that delta in seconds,
// then calls every render callback, then asks the host for the next frame.
//
// Within a frame all update callbacks finish before the first render
// callback starts, and both lists run in registration order. Frames never
// overlap. Loop is not safe for concurrent use; it is driven from the host's
// frame thread.
type Loop struct {
	host  Host
	log   *zap.Logger
	debug bool

	state    LoopState
	lastTick time.Duration
	gen      uint64 // bumped on every Start; stale frames compare against it

	updates []*updateEntry
	renders []*renderEntry
	nextID  uint32

	frames uint64
	stats  FrameStats
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithLoopLogger sets the logger used for lifecycle and debug output.
func WithLoopLogger(log *zap.Logger) LoopOption {
	return func(l *Loop) {
		if log != nil {
			l.log = log
		}
	}
}

// WithLoopDebug enables per-frame timing stats logged at debug level.
func WithLoopDebug(enabled bool) LoopOption {
	return func(l *Loop) {
		l.debug = enabled
	}
}

// NewLoop returns a stopped loop scheduled on host.
func NewLoop(host Host, opts ...LoopOption) *Loop {
	l := &Loop{host: host, log: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start begins scheduling frames. The current host time becomes the
// reference for the first delta, so time spent stopped is never reported as
// elapsed. Calling Start on a running loop does nothing.
func (l *Loop) Start() {
	if l.state == Running {
		l.log.Debug("start ignored, loop already running")
		return
	}
	l.state = Running
	l.lastTick = l.host.Now()
	l.gen++
	l.log.Debug("loop started", zap.Uint64("generation", l.gen))
	l.schedule(l.gen)
}

// Stop halts the loop at the next frame boundary. A frame that is already
// executing runs to completion; no further frame is requested after it.
func (l *Loop) Stop() {
	if l.state == Stopped {
		return
	}
	l.state = Stopped
	l.log.Debug("loop stopped", zap.Uint64("frames", l.frames))
}

// State returns the current run state.
func (l *Loop) State() LoopState {
	return l.state
}

// Running reports whether the loop is scheduling frames.
func (l *Loop) Running() bool {
	return l.state == Running
}

// Frames returns how many frames have executed.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// RegisterUpdate adds fn to the end of the update list. fn receives the
// elapsed time since the previous frame in seconds.
func (l *Loop) RegisterUpdate(fn func(dt float64)) CallbackHandle {
	l.nextID++
	id := l.nextID
	l.updates = append(l.updates, &updateEntry{id: id, fn: fn})
	return CallbackHandle{id: id, loop: l, kind: callbackUpdate}
}

// RegisterRender adds fn to the end of the render list.
func (l *Loop) RegisterRender(fn func()) CallbackHandle {
	l.nextID++
	id := l.nextID
	l.renders = append(l.renders, &renderEntry{id: id, fn: fn})
	return CallbackHandle{id: id, loop: l, kind: callbackRender}
}

// CallbackHandle allows removing a registered loop callback.
type CallbackHandle struct {
	id   uint32
	loop *Loop
	kind callbackKind
}

// Remove unregisters the callback. The remaining callbacks keep their
// relative order. A callback removed during a frame does not run later in
// that frame. Removing twice is a no-op.
func (h CallbackHandle) Remove() {
	if h.loop == nil {
		return
	}
	switch h.kind {
	case callbackUpdate:
		h.loop.updates = removeUpdate(h.loop.updates, h.id)
	case callbackRender:
		h.loop.renders = removeRender(h.loop.renders, h.id)
	}
}

// The remove helpers build a fresh slice instead of shifting in place so a
// frame iterating the old slice is not disturbed.

func removeUpdate(s []*updateEntry, id uint32) []*updateEntry {
	for i, e := range s {
		if e.id == id {
			e.removed = true
			out := make([]*updateEntry, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

func removeRender(s []*renderEntry, id uint32) []*renderEntry {
	for i, e := range s {
		if e.id == id {
			e.removed = true
			out := make([]*renderEntry, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

func (l *Loop) schedule(gen uint64) {
	l.host.RequestFrame(func() { l.frame(gen) })
}

// frame runs one iteration. gen identifies the Start call that scheduled it;
// a frame left over from before a Stop/Start cycle exits without running.
func (l *Loop) frame(gen uint64) {
	if l.state != Running || gen != l.gen {
		return
	}

	now := l.host.Now()
	dt := (now - l.lastTick).Seconds()
	l.lastTick = now

	var stats FrameStats
	var t0 time.Time
	if l.debug {
		t0 = time.Now()
	}

	updates := l.updates
	for _, e := range updates {
		if !e.removed {
			e.fn(dt)
		}
	}

	if l.debug {
		stats.UpdateTime = time.Since(t0)
		t0 = time.Now()
	}

	renders := l.renders
	for _, e := range renders {
		if !e.removed {
			e.fn()
		}
	}

	l.frames++
	if l.debug {
		stats.RenderTime = time.Since(t0)
		stats.Frame = l.frames
		stats.Delta = dt
		stats.Updates = len(updates)
		stats.Renders = len(renders)
		l.stats = stats
		l.debugLog(stats)
	}

	if l.state == Running && gen == l.gen {
		l.schedule(gen)
	}
}
