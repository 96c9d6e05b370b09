package conversion

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

var ErrEmptyMat = errors.New("empty mat")

// ToGray returns a new single-channel copy of src. The caller owns the
// result.
func ToGray(src gocv.Mat) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.NewMat(), fmt.Errorf("ToGray: %w", ErrEmptyMat)
	}

	dst := gocv.NewMat()
	switch src.Channels() {
	case 1:
		src.CopyTo(&dst)
	case 3:
		gocv.CvtColor(src, &dst, gocv.ColorBGRToGray)
	case 4:
		gocv.CvtColor(src, &dst, gocv.ColorBGRAToGray)
	default:
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("unsupported channel count for grayscale conversion: %d", src.Channels())
	}

	return dst, nil
}

// ToBGR returns a new three-channel copy of src. Cameras and still images
// may deliver gray or BGRA frames; the pipeline works on BGR only.
func ToBGR(src gocv.Mat) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.NewMat(), fmt.Errorf("ToBGR: %w", ErrEmptyMat)
	}

	dst := gocv.NewMat()
	switch src.Channels() {
	case 3:
		src.CopyTo(&dst)
	case 1:
		gocv.CvtColor(src, &dst, gocv.ColorGrayToBGR)
	case 4:
		gocv.CvtColor(src, &dst, gocv.ColorBGRAToBGR)
	default:
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("unsupported channel count for BGR conversion: %d", src.Channels())
	}

	return dst, nil
}
