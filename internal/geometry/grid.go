package geometry

import "image"

// Grid describes the reference lines drawn over the camera pane.
// WidthScale and HeightScale stretch the drawn extent relative to the frame;
// the default 1.1 horizontal stretch pushes the last column past the edge.
type Grid struct {
	Rows        int
	Cols        int
	WidthScale  float64
	HeightScale float64
}

// Segment is a straight line between two pixel positions.
type Segment struct {
	From image.Point
	To   image.Point
}

// GridLines lays out Cols-1 vertical and Rows-1 horizontal lines over a
// frame of the given size. Verticals come first.
func GridLines(width, height int, g Grid) []Segment {
	if g.Rows < 1 || g.Cols < 1 || width <= 0 || height <= 0 {
		return nil
	}

	extentX := int(float64(width) * g.WidthScale)
	extentY := int(float64(height) * g.HeightScale)

	lines := make([]Segment, 0, g.Rows+g.Cols-2)
	for i := 1; i < g.Cols; i++ {
		x := extentX * i / g.Cols
		lines = append(lines, Segment{From: image.Pt(x, 0), To: image.Pt(x, extentY)})
	}
	for i := 1; i < g.Rows; i++ {
		y := extentY * i / g.Rows
		lines = append(lines, Segment{From: image.Pt(0, y), To: image.Pt(extentX, y)})
	}
	return lines
}
