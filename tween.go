package serenity

import (
	"time"

	"github.com/tanema/gween/ease"
)

// Timing maps a linear time fraction in [0, 1] to an eased progress value,
// typically also in [0, 1].
type Timing func(fraction float64) float64

// Linear is the identity timing function.
func Linear(t float64) float64 {
	return t
}

// EaseInOutQuad accelerates through the first half and decelerates through
// the second.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// Ease adapts a gween easing function (ease.OutBounce, ease.InOutCubic, ...)
// to a Timing.
func Ease(fn ease.TweenFunc) Timing {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// AnimateOptions describes a single animation run.
type AnimateOptions struct {
	// Duration is the run length. A non-positive duration completes on the
	// first step with Timing(1).
	Duration time.Duration

	// Timing eases the time fraction. Nil means Linear.
	Timing Timing

	// Draw receives the eased progress on every step.
	Draw func(progress float64)

	// Alive, if set, is checked before every step. Once it reports false
	// the run ends without calling Draw again. Use it to stop animating a
	// target that has been disposed.
	Alive func() bool
}

type runState uint8

const (
	runActive runState = iota
	runFinished
	runCanceled
)

// TweenRun is the handle of an animation started by Animate. Runs need no
// management: a caller that ignores the handle gets fire-and-forget
// behavior and the run completes on its own.
type TweenRun struct {
	host   Host
	start  time.Duration
	opts   AnimateOptions
	state  runState
	latest float64
	steps  int
	done   chan struct{}
}

// Animate starts an animation on host. The start time is sampled now and
// the first step runs on the next frame. Each step computes
//
//	fraction = min((now - start) / Duration, 1)
//
// calls Draw(Timing(fraction)), and requests another step while fraction
// is below 1.
//
// Runs are independent of each other and of any Loop sharing the host; no
// ordering between them is guaranteed.
func Animate(host Host, opts AnimateOptions) *TweenRun {
	if opts.Timing == nil {
		opts.Timing = Linear
	}
	r := &TweenRun{
		host:  host,
		start: host.Now(),
		opts:  opts,
		done:  make(chan struct{}),
	}
	host.RequestFrame(r.step)
	return r
}

func (r *TweenRun) step() {
	if r.state != runActive {
		return
	}
	if r.opts.Alive != nil && !r.opts.Alive() {
		r.end(runCanceled)
		return
	}

	fraction := 1.0
	if r.opts.Duration > 0 {
		fraction = float64(r.host.Now()-r.start) / float64(r.opts.Duration)
		if fraction > 1 {
			fraction = 1
		}
	}

	r.latest = r.opts.Timing(fraction)
	r.steps++
	if r.opts.Draw != nil {
		r.opts.Draw(r.latest)
	}

	// Draw may have cancelled the run.
	if r.state != runActive {
		return
	}
	if fraction < 1 {
		r.host.RequestFrame(r.step)
		return
	}
	r.end(runFinished)
}

func (r *TweenRun) end(s runState) {
	r.state = s
	close(r.done)
}

// Cancel stops the run before its next step. Draw is not called again.
// Cancelling a finished run has no effect.
func (r *TweenRun) Cancel() {
	if r.state != runActive {
		return
	}
	r.end(runCanceled)
}

// Done returns a channel closed when the run finishes or is cancelled.
func (r *TweenRun) Done() <-chan struct{} {
	return r.done
}

// Finished reports whether the run reached fraction 1.
func (r *TweenRun) Finished() bool {
	return r.state == runFinished
}

// Canceled reports whether the run ended early through Cancel or a failed
// liveness check.
func (r *TweenRun) Canceled() bool {
	return r.state == runCanceled
}

// Progress returns the eased value passed to the most recent Draw.
func (r *TweenRun) Progress() float64 {
	return r.latest
}

// Steps returns how many steps have executed.
func (r *TweenRun) Steps() int {
	return r.steps
}
