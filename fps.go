package serenity

// FPSCounter measures the loop's frame rate. The reading is refreshed about
// every half second of loop time.
type FPSCounter struct {
	fps     float64
	elapsed float64
	frames  int
	handle  CallbackHandle
}

// fpsWindow is how many seconds of frames are averaged per reading.
const fpsWindow = 0.5

// NewFPSCounter creates a counter and registers it as an update callback on
// loop. Call Detach to stop counting.
func NewFPSCounter(loop *Loop) *FPSCounter {
	c := &FPSCounter{}
	c.handle = loop.RegisterUpdate(c.update)
	return c
}

func (c *FPSCounter) update(dt float64) {
	c.elapsed += dt
	c.frames++
	if c.elapsed < fpsWindow {
		return
	}
	c.fps = float64(c.frames) / c.elapsed
	c.elapsed = 0
	c.frames = 0
}

// FPS returns the most recent frame rate reading, or 0 before the first
// window completes.
func (c *FPSCounter) FPS() float64 {
	return c.fps
}

// Detach unregisters the counter from its loop.
func (c *FPSCounter) Detach() {
	c.handle.Remove()
}
