package serenity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEngineWiresLoopAndInput(t *testing.T) {
	host := NewManualHost()
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := DefaultConfig()
	e := NewEngine(host, cfg, WithLogger(zap.New(core)))

	assert.Same(t, host, e.Host().(*ManualHost))
	assert.Equal(t, cfg, e.Config())
	assert.NotNil(t, e.Logger())
	assert.False(t, e.Loop().Running(), "loop starts stopped")

	var moved Vector2
	e.RegisterUpdate(func(dt float64) {
		if e.InputState().IsKeyPressed(KeyArrowRight) {
			moved = moved.Add(Vec2(100*dt, 0))
		}
	})
	rendered := 0
	e.RegisterRender(func() { rendered++ })

	e.Start()
	assert.Equal(t, 1, logs.FilterMessage("engine starting").Len())

	e.Input().Dispatch(InputEvent{Type: EventKeyDown, Key: KeyArrowRight})
	host.Step(500 * time.Millisecond)
	assertVec(t, "moved", moved, Vec2(50, 0))
	assert.Equal(t, 1, rendered)

	e.Stop()
	host.Step(500 * time.Millisecond)
	assert.Equal(t, 1, rendered)
}

func TestEngineAnimate(t *testing.T) {
	host := NewManualHost()
	e := NewEngine(host, DefaultConfig())

	var got []float64
	run := e.Animate(AnimateOptions{
		Duration: 100 * time.Millisecond,
		Draw:     func(p float64) { got = append(got, p) },
	})
	host.Step(100 * time.Millisecond)

	assert.True(t, run.Finished())
	assert.Equal(t, []float64{1}, got)
}

func TestEngineDebugConfigEnablesStats(t *testing.T) {
	host := NewManualHost()
	cfg := DefaultConfig()
	cfg.Debug = true
	e := NewEngine(host, cfg)

	e.Start()
	host.Step(frame16)
	assert.Equal(t, uint64(1), e.Loop().LastFrameStats().Frame)
}

func TestEnginesAreIndependent(t *testing.T) {
	a := NewEngine(NewManualHost(), DefaultConfig())
	b := NewEngine(NewManualHost(), DefaultConfig())

	a.Input().Dispatch(InputEvent{Type: EventKeyDown, Key: KeySpace})
	assert.True(t, a.InputState().IsKeyPressed(KeySpace))
	assert.False(t, b.InputState().IsKeyPressed(KeySpace))
	assert.NotSame(t, a.Loop(), b.Loop())
}
