package serenity

import (
	"time"

	"go.uber.org/zap"
)

// FrameStats holds per-frame timing and callback metrics.
// Only populated when the loop runs in debug mode.
type FrameStats struct {
	Frame      uint64
	Delta      float64 // seconds
	UpdateTime time.Duration
	RenderTime time.Duration
	Updates    int
	Renders    int
}

// Total returns the time spent in callbacks for the frame.
func (s FrameStats) Total() time.Duration {
	return s.UpdateTime + s.RenderTime
}

// LastFrameStats returns the stats of the most recent frame. The zero value
// is returned when debug mode is off.
func (l *Loop) LastFrameStats() FrameStats {
	return l.stats
}

// SetDebug toggles per-frame stats logging.
func (l *Loop) SetDebug(enabled bool) {
	l.debug = enabled
	if !enabled {
		l.stats = FrameStats{}
	}
}

// debugSlowFrame is the callback time above which a frame is logged as a
// warning instead of at debug level (two refreshes at 60 Hz).
const debugSlowFrame = 2 * DefaultFrameInterval

// debugLog writes timing stats for one frame.
func (l *Loop) debugLog(stats FrameStats) {
	if !l.debug {
		return
	}
	fields := []zap.Field{
		zap.Uint64("frame", stats.Frame),
		zap.Float64("delta", stats.Delta),
		zap.Duration("update", stats.UpdateTime),
		zap.Duration("render", stats.RenderTime),
		zap.Duration("total", stats.Total()),
		zap.Int("updates", stats.Updates),
		zap.Int("renders", stats.Renders),
	}
	if stats.Total() > debugSlowFrame {
		l.log.Warn("slow frame", fields...)
		return
	}
	l.log.Debug("frame", fields...)
}
