package pipeline

import (
	"sync"
	"time"
)

// fpsSmoothing weights the newest frame interval in the moving average.
const fpsSmoothing = 0.1

type Stats struct {
	Processed   uint64
	Dropped     uint64
	LastLatency time.Duration
	FPS         float64
	LastShapes  int
}

type statsTracker struct {
	mu       sync.Mutex
	stats    Stats
	lastSeen time.Time
}

func (t *statsTracker) frameDone(now time.Time, latency time.Duration, shapes int) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stats.Processed++
	t.stats.LastLatency = latency
	t.stats.LastShapes = shapes

	if !t.lastSeen.IsZero() {
		if gap := now.Sub(t.lastSeen); gap > 0 {
			instant := float64(time.Second) / float64(gap)
			if t.stats.FPS == 0 {
				t.stats.FPS = instant
			} else {
				t.stats.FPS += fpsSmoothing * (instant - t.stats.FPS)
			}
		}
	}
	t.lastSeen = now

	return t.stats.Processed
}

func (t *statsTracker) frameDropped() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats.Dropped++
}

func (t *statsTracker) snapshot() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}
