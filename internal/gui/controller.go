package gui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shape-detector/internal/capture"
	"shape-detector/internal/logger"
	"shape-detector/internal/pipeline"
	"shape-detector/internal/profiles"

	"fyne.io/fyne/v2"
)

// CameraOpener reopens the live camera when the user switches back from a
// still image.
type CameraOpener func() (capture.Source, error)

type Controller struct {
	view        *View
	coordinator pipeline.ProcessingCoordinator
	profiles    *profiles.Manager
	openCamera  CameraOpener
	logger      logger.Logger

	mu        sync.Mutex
	running   bool
	runCancel context.CancelFunc
	runDone   chan struct{}
}

func NewController(coord pipeline.ProcessingCoordinator, profileManager *profiles.Manager, openCamera CameraOpener, log logger.Logger) *Controller {
	return &Controller{
		coordinator: coord,
		profiles:    profileManager,
		openCamera:  openCamera,
		logger:      log,
	}
}

func (c *Controller) SetView(view *View) {
	c.view = view
	c.view.SetProfiles(c.profiles.Names(), c.profiles.CurrentName())
	c.view.ShowProfile(c.profiles.Current())
}

// Start launches the capture loop on its own goroutine.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.running = true
	c.runCancel = cancel
	c.runDone = done
	c.mu.Unlock()

	c.view.SetRunning(true)
	c.view.SetStatus("Running: " + c.coordinator.SourceName())

	go func() {
		defer close(done)
		defer cancel()

		err := c.coordinator.Run(ctx, c)

		c.mu.Lock()
		c.running = false
		c.runCancel = nil
		c.mu.Unlock()

		fyne.Do(func() {
			c.view.SetRunning(false)
			if err != nil {
				c.handleError("Capture error", err)
				c.view.SetStatus("Stopped with error")
				return
			}
			c.view.SetStatus("Stopped")
		})
	}()
}

// Stop cancels the capture loop and waits briefly for it to wind down.
func (c *Controller) Stop() {
	c.mu.Lock()
	cancel := c.runCancel
	done := c.runDone
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		c.logger.Warning("Controller", "capture loop did not stop in time", nil)
	}
}

func (c *Controller) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Present implements pipeline.Sink.
func (c *Controller) Present(result *pipeline.Result) {
	stats := c.coordinator.Stats()
	fyne.Do(func() {
		c.view.SetFrames(result.Camera, result.Processed)
		c.view.SetStats(stats.FPS, len(result.Shapes), result.Latency)
	})
}

func (c *Controller) OpenImage() {
	c.view.ShowImageDialog(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			c.handleError("File selection error", err)
			return
		}
		if reader == nil {
			return
		}

		c.view.SetStatus("Loading image...")

		go func() {
			defer reader.Close()

			still, loadErr := capture.DecodeStill(reader.URI().Name(), reader)
			if loadErr != nil {
				fyne.Do(func() {
					c.handleError("Image load error", loadErr)
					c.view.SetStatus("Ready")
				})
				return
			}

			c.coordinator.SetSource(still)
			c.logger.Info("Controller", "still image loaded", map[string]interface{}{
				"source": still.Name(),
			})

			fyne.Do(func() {
				c.view.SetStatus("Source: " + still.Name())
				c.Start()
			})
		}()
	})
}

func (c *Controller) UseCamera() {
	if c.openCamera == nil {
		c.handleError("Camera error", fmt.Errorf("no camera configured"))
		return
	}

	c.view.SetStatus("Opening camera...")
	go func() {
		src, err := c.openCamera()
		if err != nil {
			fyne.Do(func() {
				c.handleError("Camera error", err)
				c.view.SetStatus("Ready")
			})
			return
		}

		c.coordinator.SetSource(src)
		fyne.Do(func() {
			c.view.SetStatus("Source: " + src.Name())
			c.Start()
		})
	}()
}

func (c *Controller) ChangeProfile(name string) {
	if err := c.profiles.SetCurrent(name); err != nil {
		c.handleError("Profile error", err)
		return
	}

	c.view.ShowProfile(c.profiles.Current())
	c.logger.Info("Controller", "profile changed", map[string]interface{}{
		"profile": name,
	})
}

func (c *Controller) UpdateParameter(name string, value interface{}) {
	current := c.profiles.CurrentName()
	if err := c.profiles.SetParameter(current, name, value); err != nil {
		c.logger.Warning("Controller", "parameter rejected", map[string]interface{}{
			"profile":   current,
			"parameter": name,
			"error":     err.Error(),
		})
		c.view.ShowProfile(c.profiles.Current())
		return
	}

	c.logger.Debug("Controller", "parameter updated", map[string]interface{}{
		"profile":   current,
		"parameter": name,
		"value":     value,
	})
}

func (c *Controller) handleError(title string, err error) {
	c.logger.Error("Controller", err, map[string]interface{}{
		"title": title,
	})

	fyne.Do(func() {
		c.view.ShowError(title, err)
	})
}

func (c *Controller) Shutdown() {
	c.Stop()
	c.logger.Info("Controller", "shutdown completed", nil)
}
