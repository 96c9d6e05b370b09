package vision

import (
	"errors"
	"fmt"
	"image"

	"shape-detector/internal/opencv/conversion"

	"gocv.io/x/gocv"
)

var ErrEmptyFrame = errors.New("empty frame")

const (
	bilateralDiameter   = 9
	bilateralSigmaColor = 75
	bilateralSigmaSpace = 75

	blurKernel = 7
	blurSigma  = 1

	cannyHigh = 200
	cannyLow  = 25

	morphKernel = 3
)

// EdgeMask turns a BGR frame into a binary edge mask of the same size:
// blur, grayscale, Canny, then one dilate and one erode pass to close gaps
// in the outlines. With bilateral set, an edge-preserving bilateral filter
// runs ahead of the Gaussian blur.
func EdgeMask(src gocv.Mat, bilateral bool) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.NewMat(), fmt.Errorf("edge mask: %w", ErrEmptyFrame)
	}

	input := src
	if bilateral {
		filtered := gocv.NewMat()
		defer filtered.Close()
		gocv.BilateralFilter(src, &filtered, bilateralDiameter, bilateralSigmaColor, bilateralSigmaSpace)
		input = filtered
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(input, &blurred, image.Pt(blurKernel, blurKernel), blurSigma, 0, gocv.BorderDefault)

	gray, err := conversion.ToGray(blurred)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("edge mask: %w", err)
	}
	defer gray.Close()

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, cannyHigh, cannyLow)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(morphKernel, morphKernel))
	defer kernel.Close()

	dilated := gocv.NewMat()
	defer dilated.Close()
	gocv.Dilate(edges, &dilated, kernel)

	mask := gocv.NewMat()
	gocv.Erode(dilated, &mask, kernel)
	return mask, nil
}
