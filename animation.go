package serenity

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Disposable is implemented by animation targets that can go away while a
// tween is still running.
type Disposable interface {
	IsDisposed() bool
}

// TweenGroup animates up to 4 float values toward targets simultaneously
// and writes them back on every Update. Create one via TweenFloat,
// TweenVector2 or TweenColor and either call Update(dt) each frame or hand
// it to a Loop with Attach. If the owner set with Own is disposed, the group
// stops immediately.
//
// Unlike Animate, a TweenGroup is advanced by frame deltas rather than by
// sampling the host clock.
type TweenGroup struct {
	tweens [4]*gween.Tween
	values [4]float64
	count  int
	apply  func(values [4]float64)
	owner  Disposable
	Done   bool
}

func newTweenGroup(from, to []float64, duration time.Duration, fn ease.TweenFunc, apply func([4]float64)) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	secs := float32(duration.Seconds())
	g := &TweenGroup{count: len(from), apply: apply}
	for i := range from {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), secs, fn)
		g.values[i] = from[i]
	}
	return g
}

// Own ties the group to owner; once owner reports disposed the group is
// Done and stops writing.
func (g *TweenGroup) Own(owner Disposable) *TweenGroup {
	g.owner = owner
	return g
}

// Update advances all tweens by dt seconds and writes the values to the
// target. If the owner has been disposed, Done is set and no writes occur.
func (g *TweenGroup) Update(dt float64) {
	if g.Done {
		return
	}

	if g.owner != nil && g.owner.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(float32(dt))
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(g.values)
}

// Attach runs the group from an update callback on loop. The callback
// removes itself once the group is done.
func (g *TweenGroup) Attach(loop *Loop) CallbackHandle {
	var h CallbackHandle
	h = loop.RegisterUpdate(func(dt float64) {
		g.Update(dt)
		if g.Done {
			h.Remove()
		}
	})
	return h
}

// TweenFloat creates a TweenGroup that animates *field to the given value
// over duration using the easing function. A nil easing function is linear.
func TweenFloat(field *float64, to float64, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup([]float64{*field}, []float64{to}, duration, fn, func(v [4]float64) {
		*field = v[0]
	})
}

// TweenVector2 creates a TweenGroup that animates both components of *vec
// to the target vector.
func TweenVector2(vec *Vector2, to Vector2, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(
		[]float64{vec.X, vec.Y},
		[]float64{to.X, to.Y},
		duration, fn,
		func(v [4]float64) {
			*vec = Vector2{v[0], v[1]}
		},
	)
}

// TweenColor creates a TweenGroup that animates all four channels of *c to
// the target color. Overshooting easings (ease.OutElastic, ease.OutBack)
// are clamped back into range on every write.
func TweenColor(c *Color, to Color, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(
		[]float64{c.r, c.g, c.b, c.a},
		[]float64{to.r, to.g, to.b, to.a},
		duration, fn,
		func(v [4]float64) {
			*c = NewColor(v[0], v[1], v[2], v[3])
		},
	)
}

// TweenTransform creates a TweenGroup that animates t.Position and
// t.Rotation to the given targets.
func TweenTransform(t *Transform, toPos Vector2, toRotation float64, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(
		[]float64{t.Position.X, t.Position.Y, t.Rotation},
		[]float64{toPos.X, toPos.Y, toRotation},
		duration, fn,
		func(v [4]float64) {
			t.Position = Vector2{v[0], v[1]}
			t.Rotation = v[2]
		},
	)
}
