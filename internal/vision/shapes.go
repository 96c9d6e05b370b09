package vision

import (
	"fmt"
	"image"

	"shape-detector/internal/geometry"

	"gocv.io/x/gocv"
)

// Shape is one outer contour that survived the noise filter.
type Shape struct {
	Contour  []image.Point
	Area     float64
	Bounds   image.Rectangle
	Rotated  gocv.RotatedRect
	Vertices int
	Kind     geometry.Kind
	Size     geometry.Dimensions
}

// ShapeOptions controls which contours count as shapes and how they are
// measured.
type ShapeOptions struct {
	MinArea float64
	Scale   geometry.Scale
	Rotated bool
}

// FindShapes extracts the outer contours of an edge mask and keeps those
// larger than MinArea. Size estimates use the rotated minimum-area box when
// Rotated is set, the axis-aligned bounding box otherwise.
func FindShapes(mask gocv.Mat, opts ShapeOptions) ([]Shape, error) {
	if mask.Empty() {
		return nil, fmt.Errorf("find shapes: %w", ErrEmptyFrame)
	}
	if mask.Channels() != 1 {
		return nil, fmt.Errorf("find shapes: mask must have one channel, got %d", mask.Channels())
	}

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxNone)
	defer contours.Close()

	shapes := make([]Shape, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)

		area := gocv.ContourArea(contour)
		if area <= opts.MinArea {
			continue
		}

		shapes = append(shapes, describe(contour, area, opts))
	}

	return shapes, nil
}

func describe(contour gocv.PointVector, area float64, opts ShapeOptions) Shape {
	bounds := gocv.BoundingRect(contour)
	rotated := gocv.MinAreaRect(contour)

	approx := gocv.ApproxPolyDP(contour, geometry.ApproxEpsilon(gocv.ArcLength(contour, true)), true)
	vertices := approx.Size()
	approx.Close()

	size := geometry.Measure(bounds, opts.Scale)
	if opts.Rotated {
		size = geometry.MeasureSize(rotated.Width, rotated.Height, opts.Scale)
	}

	return Shape{
		Contour:  contour.ToPoints(),
		Area:     area,
		Bounds:   bounds,
		Rotated:  rotated,
		Vertices: vertices,
		Kind:     geometry.Classify(vertices),
		Size:     size,
	}
}
