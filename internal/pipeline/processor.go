package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"shape-detector/internal/opencv/bridge"
	"shape-detector/internal/opencv/conversion"
	"shape-detector/internal/profiles"
	"shape-detector/internal/vision"

	"gocv.io/x/gocv"
)

// Result is one processed frame, ready for display. RunID identifies the
// capture loop that produced it and is empty outside Run.
type Result struct {
	RunID     string
	Sequence  uint64
	Profile   string
	Camera    image.Image
	Processed image.Image
	Shapes    []vision.Shape
	Latency   time.Duration
}

// Appearance holds the drawing colours and the pane size frames are
// fitted to.
type Appearance struct {
	Annotation color.RGBA
	Grid       color.RGBA
	PaneWidth  int
	PaneHeight int
}

type frameProcessor struct {
	appearance Appearance
}

// process runs zoom, exposure adjustment, edge detection, contour marking
// and the grid overlay on one BGR frame.
func (p *frameProcessor) process(frame gocv.Mat, profile profiles.Profile) (*Result, error) {
	if frame.Empty() {
		return nil, vision.ErrEmptyFrame
	}

	start := time.Now()

	bgr, err := conversion.ToBGR(frame)
	if err != nil {
		return nil, err
	}
	defer bgr.Close()

	zoomed, err := vision.Zoom(bgr, profile.Zoom)
	if err != nil {
		return nil, err
	}
	defer zoomed.Close()

	adjusted, err := vision.Adjust(zoomed, vision.Adjustment{
		Shadow:    profile.Shadow,
		Contrast:  profile.Contrast,
		Sharpness: profile.Sharpness,
	})
	if err != nil {
		return nil, err
	}
	defer adjusted.Close()

	mask, err := vision.EdgeMask(adjusted, profile.Bilateral)
	if err != nil {
		return nil, err
	}
	defer mask.Close()

	rotated := profile.Bounding == profiles.BoundingRotated
	shapes, err := vision.FindShapes(mask, vision.ShapeOptions{
		MinArea: profile.MinArea,
		Scale:   profile.Scale(),
		Rotated: rotated,
	})
	if err != nil {
		return nil, err
	}

	vision.Annotate(&adjusted, shapes, vision.Style{Color: p.appearance.Annotation, Rotated: rotated})
	vision.DrawGrid(&adjusted, profile.Grid(), p.appearance.Grid)

	cameraImg, err := p.toPane(adjusted)
	if err != nil {
		return nil, fmt.Errorf("camera pane: %w", err)
	}
	processedImg, err := p.toPane(mask)
	if err != nil {
		return nil, fmt.Errorf("processed pane: %w", err)
	}

	return &Result{
		Profile:   profile.Name,
		Camera:    cameraImg,
		Processed: processedImg,
		Shapes:    shapes,
		Latency:   time.Since(start),
	}, nil
}

func (p *frameProcessor) toPane(mat gocv.Mat) (image.Image, error) {
	img, err := bridge.MatToImage(mat)
	if err != nil {
		return nil, err
	}
	if p.appearance.PaneWidth <= 0 || p.appearance.PaneHeight <= 0 {
		return img, nil
	}
	return bridge.FitPane(img, p.appearance.PaneWidth, p.appearance.PaneHeight), nil
}
