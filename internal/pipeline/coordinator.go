package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"shape-detector/internal/capture"
	"shape-detector/internal/logger"
	"shape-detector/internal/profiles"

	"github.com/google/uuid"
	"gocv.io/x/gocv"
)

var ErrAlreadyRunning = errors.New("pipeline already running")

// Sink receives processed frames. Present is called from the capture
// goroutine and must not block for long.
type Sink interface {
	Present(result *Result)
}

type ProcessingCoordinator interface {
	Run(ctx context.Context, sink Sink) error
	ProcessFrame(frame gocv.Mat) (*Result, error)
	SetSource(src capture.Source)
	SourceName() string
	Stats() Stats
	Shutdown()
}

type Options struct {
	Interval   time.Duration
	Appearance Appearance
}

// Coordinator owns the capture source and runs the single capture loop:
// read, process, present, wait for the next tick.
type Coordinator struct {
	mu        sync.Mutex
	source    capture.Source
	profiles  *profiles.Manager
	processor *frameProcessor
	interval  time.Duration
	logger    logger.Logger
	stats     statsTracker
	running   bool
	runID     string
}

func NewCoordinator(src capture.Source, profileManager *profiles.Manager, opts Options, log logger.Logger) *Coordinator {
	interval := opts.Interval
	if interval <= 0 {
		interval = 33 * time.Millisecond
	}

	coord := &Coordinator{
		source:    src,
		profiles:  profileManager,
		processor: &frameProcessor{appearance: opts.Appearance},
		interval:  interval,
		logger:    log,
	}

	log.Info("PipelineCoordinator", "initialized", map[string]interface{}{
		"source":   coord.SourceName(),
		"interval": interval,
	})
	return coord
}

// ProcessFrame runs the detection chain on one frame with the current
// profile.
func (c *Coordinator) ProcessFrame(frame gocv.Mat) (*Result, error) {
	profile := c.profiles.Current()

	result, err := c.processor.process(frame, profile)
	if err != nil {
		return nil, fmt.Errorf("process frame: %w", err)
	}

	result.Sequence = c.stats.frameDone(time.Now(), result.Latency, len(result.Shapes))

	c.mu.Lock()
	result.RunID = c.runID
	c.mu.Unlock()
	return result, nil
}

// SetSource swaps the capture source. The previous source is closed.
func (c *Coordinator) SetSource(src capture.Source) {
	c.mu.Lock()
	old := c.source
	c.source = src
	c.mu.Unlock()

	if old != nil && old != src {
		if err := old.Close(); err != nil {
			c.logger.Warning("PipelineCoordinator", "closing previous source failed", map[string]interface{}{
				"source": old.Name(),
				"error":  err.Error(),
			})
		}
	}

	c.logger.Info("PipelineCoordinator", "source changed", map[string]interface{}{
		"source": c.SourceName(),
	})
}

func (c *Coordinator) SourceName() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.source == nil {
		return "none"
	}
	return c.source.Name()
}

func (c *Coordinator) currentSource() capture.Source {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.source
}

// Run loops until ctx is cancelled or the source reports io.EOF. Any other
// failure is logged and the frame skipped.
func (c *Coordinator) Run(ctx context.Context, sink Sink) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}
	c.running = true
	c.runID = uuid.New().String()
	runID := c.runID
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.running = false
		c.runID = ""
		c.mu.Unlock()
	}()

	frame := gocv.NewMat()
	defer frame.Close()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Info("PipelineCoordinator", "capture loop started", map[string]interface{}{
		"run_id": runID,
		"source": c.SourceName(),
	})

	for {
		if err := c.step(&frame, sink); err != nil {
			if errors.Is(err, io.EOF) {
				c.logger.Info("PipelineCoordinator", "source exhausted", map[string]interface{}{
					"run_id": runID,
					"source": c.SourceName(),
				})
				return nil
			}
			c.stats.frameDropped()
			fields := map[string]interface{}{
				"error": err.Error(),
			}
			// an idle camera misses every tick
			if errors.Is(err, capture.ErrNoFrame) {
				c.logger.Debug("PipelineCoordinator", "no frame", fields)
			} else {
				c.logger.Warning("PipelineCoordinator", "frame skipped", fields)
			}
		}

		select {
		case <-ctx.Done():
			c.logger.Info("PipelineCoordinator", "capture loop stopped", map[string]interface{}{
				"run_id":    runID,
				"processed": c.stats.snapshot().Processed,
			})
			return nil
		case <-ticker.C:
		}
	}
}

func (c *Coordinator) step(frame *gocv.Mat, sink Sink) error {
	src := c.currentSource()
	if src == nil {
		return capture.ErrNoFrame
	}

	if err := src.Read(frame); err != nil {
		if errors.Is(err, io.EOF) && c.currentSource() != src {
			return fmt.Errorf("source %s replaced: %w", src.Name(), capture.ErrNoFrame)
		}
		return err
	}

	result, err := c.ProcessFrame(*frame)
	if err != nil {
		return err
	}

	if sink != nil {
		sink.Present(result)
	}

	c.logger.Debug("PipelineCoordinator", "frame processed", map[string]interface{}{
		"sequence": result.Sequence,
		"shapes":   len(result.Shapes),
		"latency":  result.Latency,
	})
	return nil
}

func (c *Coordinator) Stats() Stats {
	return c.stats.snapshot()
}

func (c *Coordinator) Shutdown() {
	c.logger.Info("PipelineCoordinator", "shutdown started", nil)

	c.mu.Lock()
	src := c.source
	c.source = nil
	c.mu.Unlock()

	if src != nil {
		if err := src.Close(); err != nil {
			c.logger.Error("PipelineCoordinator", err, map[string]interface{}{
				"operation": "close_source",
			})
		}
	}

	c.logger.Info("PipelineCoordinator", "shutdown completed", nil)
}
