package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		vertices int
		want     Kind
	}{
		{0, KindUnknown},
		{2, KindUnknown},
		{3, KindTriangle},
		{4, KindQuadrilateral},
		{5, KindPentagon},
		{6, KindHexagon},
		{7, KindPolygon},
		{8, KindCircle},
		{40, KindCircle},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.vertices), "vertices=%d", tt.vertices)
	}
}

func TestApproxEpsilon(t *testing.T) {
	assert.InDelta(t, 12.0, ApproxEpsilon(600), 1e-9)
}
