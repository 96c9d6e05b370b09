package geometry

// Kind names a shape by the vertex count of its simplified contour.
type Kind string

const (
	KindUnknown       Kind = "unknown"
	KindTriangle      Kind = "triangle"
	KindQuadrilateral Kind = "quadrilateral"
	KindPentagon      Kind = "pentagon"
	KindHexagon       Kind = "hexagon"
	KindPolygon       Kind = "polygon"
	KindCircle        Kind = "circle"
)

// Classify maps a polygon approximation to a shape kind. Eight or more
// vertices are treated as a round outline.
func Classify(vertices int) Kind {
	switch {
	case vertices < 3:
		return KindUnknown
	case vertices == 3:
		return KindTriangle
	case vertices == 4:
		return KindQuadrilateral
	case vertices == 5:
		return KindPentagon
	case vertices == 6:
		return KindHexagon
	case vertices == 7:
		return KindPolygon
	default:
		return KindCircle
	}
}

// ApproxEpsilonRatio is the fraction of the contour perimeter used as the
// polygon approximation tolerance.
const ApproxEpsilonRatio = 0.02

// ApproxEpsilon returns the approximation tolerance for a contour perimeter.
func ApproxEpsilon(perimeter float64) float64 {
	return ApproxEpsilonRatio * perimeter
}
