package vision

import (
	"fmt"
	"image"
	"image/color"

	"shape-detector/internal/geometry"

	"gocv.io/x/gocv"
)

const (
	labelFont      = gocv.FontHersheyDuplex
	labelScale     = 0.5
	labelThickness = 1
	lineThickness  = 1
)

// Style selects colours and the bounding box flavour drawn over shapes.
type Style struct {
	Color   color.RGBA
	Rotated bool
}

// Annotate draws every shape onto dst: the contour, its bounding box and
// two text lines with the size estimate and the vertex count with kind.
func Annotate(dst *gocv.Mat, shapes []Shape, style Style) {
	if dst.Empty() || len(shapes) == 0 {
		return
	}

	outlines := make([][]image.Point, 0, len(shapes))
	for _, s := range shapes {
		outlines = append(outlines, s.Contour)
	}
	contours := gocv.NewPointsVectorFromPoints(outlines)
	defer contours.Close()
	gocv.DrawContours(dst, contours, -1, style.Color, lineThickness)

	for _, s := range shapes {
		drawBox(dst, s, style)

		sizeAt, pointsAt := geometry.LabelAnchors(s.Bounds)
		gocv.PutText(dst, s.Size.Label(), sizeAt, labelFont, labelScale, style.Color, labelThickness)
		gocv.PutText(dst, pointsLabel(s), pointsAt, labelFont, labelScale, style.Color, labelThickness)
	}
}

// pointsLabel is the second text line: vertex count and the shape kind.
func pointsLabel(s Shape) string {
	return fmt.Sprintf("Points: %d (%s)", s.Vertices, s.Kind)
}

func drawBox(dst *gocv.Mat, s Shape, style Style) {
	if !style.Rotated || len(s.Rotated.Points) != 4 {
		gocv.Rectangle(dst, s.Bounds, style.Color, lineThickness)
		return
	}

	box := gocv.NewPointsVectorFromPoints([][]image.Point{s.Rotated.Points})
	defer box.Close()
	gocv.Polylines(dst, box, true, style.Color, lineThickness)
}

// DrawGrid overlays reference lines on dst.
func DrawGrid(dst *gocv.Mat, grid geometry.Grid, c color.RGBA) {
	if dst.Empty() {
		return
	}

	for _, seg := range geometry.GridLines(dst.Cols(), dst.Rows(), grid) {
		gocv.Line(dst, seg.From, seg.To, c, lineThickness)
	}
}
