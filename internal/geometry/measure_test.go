package geometry

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeasure(t *testing.T) {
	s := Scale{Length: 0.03695, Width: 0.03695}
	d := Measure(image.Rect(10, 20, 210, 130), s)

	assert.InDelta(t, 110*0.03695, d.LengthCM, 1e-9)
	assert.InDelta(t, 200*0.03695, d.WidthCM, 1e-9)
	assert.Equal(t, "l=4.06 cm, w=7.39 cm", d.Label())
}

func TestMeasureSizeUsesSeparateScales(t *testing.T) {
	d := MeasureSize(50, 80, Scale{Length: 0.5, Width: 0.1})
	assert.InDelta(t, 40.0, d.LengthCM, 1e-9)
	assert.InDelta(t, 5.0, d.WidthCM, 1e-9)
}

func TestMeasureEmptyRect(t *testing.T) {
	d := Measure(image.Rectangle{}, Scale{Length: 1, Width: 1})
	assert.Equal(t, "l=0.00 cm, w=0.00 cm", d.Label())
}

func TestLabelAnchors(t *testing.T) {
	size, points := LabelAnchors(image.Rect(10, 20, 60, 90))
	assert.Equal(t, image.Pt(60, 90), size)
	assert.Equal(t, image.Pt(60, 105), points)
}
