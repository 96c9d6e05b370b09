package bridge

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

var ErrEmptyMat = errors.New("empty mat")

// MatToImage copies an 8-bit Mat into a Go image. Gray Mats become
// *image.Gray, BGR and BGRA Mats become *image.RGBA.
func MatToImage(mat gocv.Mat) (image.Image, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("MatToImage: %w", ErrEmptyMat)
	}

	rows := mat.Rows()
	cols := mat.Cols()
	channels := mat.Channels()

	switch mat.Type() {
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV8UC3, gocv.MatTypeCV8UC4:
	default:
		return nil, fmt.Errorf("unsupported Mat type: %d", int(mat.Type()))
	}

	data := mat.ToBytes()
	if len(data) != rows*cols*channels {
		return nil, fmt.Errorf("Mat data size %d does not match %dx%dx%d", len(data), cols, rows, channels)
	}

	switch channels {
	case 1:
		img := image.NewGray(image.Rect(0, 0, cols, rows))
		copy(img.Pix, data)
		return img, nil
	case 3:
		return bgrToRGBA(data, rows, cols, 3), nil
	case 4:
		return bgrToRGBA(data, rows, cols, 4), nil
	default:
		return nil, fmt.Errorf("unsupported number of channels: %d", channels)
	}
}

func bgrToRGBA(data []byte, rows, cols, channels int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))

	for i, j := 0, 0; i < len(data); i, j = i+channels, j+4 {
		img.Pix[j] = data[i+2]
		img.Pix[j+1] = data[i+1]
		img.Pix[j+2] = data[i]
		if channels == 4 {
			img.Pix[j+3] = data[i+3]
		} else {
			img.Pix[j+3] = 255
		}
	}

	return img
}

// FitPane centre-crops img to the pane size. Images smaller than the pane
// along an axis are placed in the centre of a black canvas instead.
func FitPane(img image.Image, width, height int) *image.NRGBA {
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return imaging.Clone(img)
	}

	cropW := min(bounds.Dx(), width)
	cropH := min(bounds.Dy(), height)
	cropped := imaging.CropCenter(img, cropW, cropH)
	if cropW == width && cropH == height {
		return cropped
	}

	canvas := imaging.New(width, height, color.Black)
	return imaging.PasteCenter(canvas, cropped)
}
