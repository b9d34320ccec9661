package serenity

import (
	"context"
	"sync"
	"time"
)

// ManualHost is a deterministic Host driven explicitly by the caller. Time
// only moves when Advance or SetTime is called, and queued frame callbacks
// only run when Frame is called. It is the host used for headless runs and
// tests.
//
// ManualHost is not safe for concurrent use.
type ManualHost struct {
	now     time.Duration
	pending []func()
	frames  int
}

// NewManualHost returns a host whose clock starts at zero.
func NewManualHost() *ManualHost {
	return &ManualHost{}
}

// Now returns the simulated time.
func (h *ManualHost) Now() time.Duration {
	return h.now
}

// RequestFrame queues fn for the next call to Frame.
func (h *ManualHost) RequestFrame(fn func()) {
	h.pending = append(h.pending, fn)
}

// Advance moves the clock forward by d. Negative values are ignored so the
// clock stays monotonic.
func (h *ManualHost) Advance(d time.Duration) {
	if d > 0 {
		h.now += d
	}
}

// SetTime moves the clock to t. Times earlier than the current reading are
// ignored.
func (h *ManualHost) SetTime(t time.Duration) {
	if t > h.now {
		h.now = t
	}
}

// Frame runs every callback that was queued before the call, in request
// order, and returns how many ran. Callbacks requested while the frame runs
// are deferred to the next Frame.
func (h *ManualHost) Frame() int {
	batch := h.pending
	h.pending = nil
	for _, fn := range batch {
		fn()
	}
	h.frames++
	return len(batch)
}

// Step advances the clock by d and runs one frame.
func (h *ManualHost) Step(d time.Duration) int {
	h.Advance(d)
	return h.Frame()
}

// Pending returns the number of callbacks waiting for the next frame.
func (h *ManualHost) Pending() int {
	return len(h.pending)
}

// Frames returns how many frames have run.
func (h *ManualHost) Frames() int {
	return h.frames
}

// DefaultFrameInterval is the refresh interval used by TickerHost when none
// is configured (60 Hz).
const DefaultFrameInterval = time.Second / 60

// TickerHost is a real-time Host that runs queued frame callbacks on a fixed
// refresh interval. Callbacks run on the goroutine that called Run.
// RequestFrame may be called from any goroutine.
type TickerHost struct {
	origin   time.Time
	interval time.Duration

	mu      sync.Mutex
	pending []func()
}

// NewTickerHost returns a host that refreshes every interval. A
// non-positive interval selects DefaultFrameInterval.
func NewTickerHost(interval time.Duration) *TickerHost {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &TickerHost{origin: time.Now(), interval: interval}
}

// Now returns the monotonic time since the host was created.
func (h *TickerHost) Now() time.Duration {
	return time.Since(h.origin)
}

// RequestFrame queues fn for the next refresh.
func (h *TickerHost) RequestFrame(fn func()) {
	h.mu.Lock()
	h.pending = append(h.pending, fn)
	h.mu.Unlock()
}

// Run drives frames until ctx is done and returns ctx.Err().
func (h *TickerHost) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			h.runFrame()
		}
	}
}

func (h *TickerHost) runFrame() {
	h.mu.Lock()
	batch := h.pending
	h.pending = nil
	h.mu.Unlock()
	for _, fn := range batch {
		fn()
	}
}
