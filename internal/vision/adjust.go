package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Adjustment is a brightness/contrast/sharpness correction applied before
// edge detection.
type Adjustment struct {
	Shadow    float64
	Contrast  float64
	Sharpness float64
}

// Zoom scales src by factor with bilinear interpolation.
func Zoom(src gocv.Mat, factor float64) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.NewMat(), fmt.Errorf("zoom: %w", ErrEmptyFrame)
	}
	if factor <= 0 {
		return gocv.NewMat(), fmt.Errorf("zoom: factor must be positive, got %v", factor)
	}

	size := image.Pt(int(float64(src.Cols())*factor), int(float64(src.Rows())*factor))
	if size.X < 1 || size.Y < 1 {
		return gocv.NewMat(), fmt.Errorf("zoom: factor %v shrinks %dx%d to nothing", factor, src.Cols(), src.Rows())
	}

	dst := gocv.NewMat()
	if factor == 1 {
		src.CopyTo(&dst)
		return dst, nil
	}

	gocv.Resize(src, &dst, size, 0, 0, gocv.InterpolationLinear)
	return dst, nil
}

// Adjust shifts brightness by Shadow, then scales by Contrast. A positive
// Sharpness runs a 3x3 sharpening kernel whose centre weight is 5+Sharpness.
func Adjust(src gocv.Mat, a Adjustment) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.NewMat(), fmt.Errorf("adjust: %w", ErrEmptyFrame)
	}

	shifted := gocv.NewMat()
	defer shifted.Close()
	src.ConvertToWithParams(&shifted, src.Type(), 1, float32(a.Shadow))

	dst := gocv.NewMat()
	shifted.ConvertToWithParams(&dst, shifted.Type(), float32(a.Contrast), 0)

	if a.Sharpness <= 0 {
		return dst, nil
	}

	kernel := sharpenKernel(a.Sharpness)
	defer kernel.Close()

	sharpened := gocv.NewMat()
	gocv.Filter2D(dst, &sharpened, -1, kernel, image.Pt(-1, -1), 0, gocv.BorderDefault)
	dst.Close()
	return sharpened, nil
}

func sharpenKernel(sharpness float64) gocv.Mat {
	weights := [3][3]float32{
		{0, -1, 0},
		{-1, 5 + float32(sharpness), -1},
		{0, -1, 0},
	}

	kernel := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV32F)
	for r := range weights {
		for c, w := range weights[r] {
			kernel.SetFloatAt(r, c, w)
		}
	}
	return kernel
}
