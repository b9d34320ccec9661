package serenity

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualHostClock(t *testing.T) {
	h := NewManualHost()
	assert.Zero(t, h.Now())

	h.Advance(10 * time.Millisecond)
	h.Advance(-time.Second)
	assert.Equal(t, 10*time.Millisecond, h.Now(), "negative advance is ignored")

	h.SetTime(time.Second)
	h.SetTime(500 * time.Millisecond)
	assert.Equal(t, time.Second, h.Now(), "clock never moves backward")
}

func TestManualHostFrameRunsQueuedBatch(t *testing.T) {
	h := NewManualHost()
	var log []int
	h.RequestFrame(func() {
		log = append(log, 1)
		h.RequestFrame(func() { log = append(log, 3) })
	})
	h.RequestFrame(func() { log = append(log, 2) })

	assert.Equal(t, 2, h.Frame())
	assert.Equal(t, []int{1, 2}, log, "requests made during a frame wait for the next")
	assert.Equal(t, 1, h.Pending())

	assert.Equal(t, 1, h.Frame())
	assert.Equal(t, []int{1, 2, 3}, log)
	assert.Equal(t, 2, h.Frames())
	assert.Zero(t, h.Frame(), "empty frame")
}

func TestManualHostStep(t *testing.T) {
	h := NewManualHost()
	var at time.Duration
	h.RequestFrame(func() { at = h.Now() })
	h.Step(25 * time.Millisecond)
	assert.Equal(t, 25*time.Millisecond, at, "clock advances before callbacks run")
}

func TestTickerHostRunsFrames(t *testing.T) {
	h := NewTickerHost(time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	loop := NewLoop(h)
	var frames atomic.Int32
	loop.RegisterUpdate(func(dt float64) {
		if frames.Add(1) == 5 {
			cancel()
		}
	})
	loop.Start()

	err := h.Run(ctx)
	require.True(t, errors.Is(err, context.Canceled), "Run returns the context error, got %v", err)
	assert.GreaterOrEqual(t, frames.Load(), int32(5))
}

func TestTickerHostClockMonotonic(t *testing.T) {
	h := NewTickerHost(0)
	assert.Equal(t, DefaultFrameInterval, h.interval)

	prev := h.Now()
	for i := 0; i < 100; i++ {
		now := h.Now()
		assert.GreaterOrEqual(t, now, prev)
		prev = now
	}
}
