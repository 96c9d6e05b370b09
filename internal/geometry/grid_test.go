package geometry

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridLinesDefaultLayout(t *testing.T) {
	lines := GridLines(640, 480, Grid{Rows: 4, Cols: 4, WidthScale: 1.1, HeightScale: 1.0})
	require.Len(t, lines, 6)

	// extent is 704 x 480
	assert.Equal(t, Segment{From: image.Pt(176, 0), To: image.Pt(176, 480)}, lines[0])
	assert.Equal(t, Segment{From: image.Pt(352, 0), To: image.Pt(352, 480)}, lines[1])
	assert.Equal(t, Segment{From: image.Pt(528, 0), To: image.Pt(528, 480)}, lines[2])
	assert.Equal(t, Segment{From: image.Pt(0, 120), To: image.Pt(704, 120)}, lines[3])
	assert.Equal(t, Segment{From: image.Pt(0, 240), To: image.Pt(704, 240)}, lines[4])
	assert.Equal(t, Segment{From: image.Pt(0, 360), To: image.Pt(704, 360)}, lines[5])
}

func TestGridLinesSingleCell(t *testing.T) {
	assert.Empty(t, GridLines(640, 480, Grid{Rows: 1, Cols: 1, WidthScale: 1, HeightScale: 1}))
}

func TestGridLinesInvalid(t *testing.T) {
	assert.Nil(t, GridLines(640, 480, Grid{Rows: 0, Cols: 4, WidthScale: 1, HeightScale: 1}))
	assert.Nil(t, GridLines(0, 480, Grid{Rows: 4, Cols: 4, WidthScale: 1, HeightScale: 1}))
}

func TestGridLinesUneven(t *testing.T) {
	lines := GridLines(100, 90, Grid{Rows: 3, Cols: 2, WidthScale: 1, HeightScale: 1})
	require.Len(t, lines, 3)
	assert.Equal(t, 50, lines[0].From.X)
	assert.Equal(t, 30, lines[1].From.Y)
	assert.Equal(t, 60, lines[2].From.Y)
}
