package geometry

import (
	"fmt"
	"image"
)

// Scale converts pixels to centimetres. Length applies to the vertical
// extent of a shape and Width to the horizontal one.
type Scale struct {
	Length float64
	Width  float64
}

// Dimensions is a real-world size estimate in centimetres.
type Dimensions struct {
	LengthCM float64
	WidthCM  float64
}

// Measure estimates the size of an axis-aligned bounding rectangle.
func Measure(r image.Rectangle, s Scale) Dimensions {
	return MeasureSize(r.Dx(), r.Dy(), s)
}

// MeasureSize estimates the size of a box given in pixels. Used for rotated
// rectangles, whose sides are not aligned with the image axes.
func MeasureSize(width, height int, s Scale) Dimensions {
	return Dimensions{
		LengthCM: float64(height) * s.Length,
		WidthCM:  float64(width) * s.Width,
	}
}

// Label renders the size estimate the way it is drawn next to each shape.
func (d Dimensions) Label() string {
	return fmt.Sprintf("l=%.2f cm, w=%.2f cm", d.LengthCM, d.WidthCM)
}

// LineSpacing is the vertical distance between two annotation lines.
const LineSpacing = 15

// LabelAnchors returns the baseline origins of the size line and the vertex
// count line, both placed at the bottom-right corner of the bounding box.
func LabelAnchors(r image.Rectangle) (size, points image.Point) {
	size = image.Pt(r.Max.X, r.Max.Y)
	points = image.Pt(r.Max.X, r.Max.Y+LineSpacing)
	return size, points
}
