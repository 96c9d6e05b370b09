package widgets

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	PaneWidth  = 640
	PaneHeight = 480
)

// ImageDisplay shows the annotated camera frame and the edge mask side by
// side in two fixed-size panes.
type ImageDisplay struct {
	container      fyne.CanvasObject
	cameraImage    *canvas.Image
	processedImage *canvas.Image
}

func NewImageDisplay() *ImageDisplay {
	display := &ImageDisplay{}
	display.createComponents()
	display.setupLayout()
	return display
}

func (id *ImageDisplay) createComponents() {
	id.cameraImage = newPaneImage()
	id.processedImage = newPaneImage()
}

func newPaneImage() *canvas.Image {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleFastest
	img.SetMinSize(fyne.NewSize(PaneWidth, PaneHeight))
	return img
}

func (id *ImageDisplay) setupLayout() {
	cameraContainer := container.NewBorder(
		widget.NewRichTextFromMarkdown("**Camera**"),
		nil, nil, nil,
		id.cameraImage,
	)

	processedContainer := container.NewBorder(
		widget.NewRichTextFromMarkdown("**Processed**"),
		nil, nil, nil,
		id.processedImage,
	)

	id.container = container.NewGridWithColumns(2, cameraContainer, processedContainer)
}

func (id *ImageDisplay) GetContainer() fyne.CanvasObject {
	return id.container
}

// SetFrames must be called on the fyne goroutine.
func (id *ImageDisplay) SetFrames(camera, processed image.Image) {
	id.cameraImage.Image = camera
	id.cameraImage.Refresh()

	id.processedImage.Image = processed
	id.processedImage.Refresh()
}

func (id *ImageDisplay) Clear() {
	id.SetFrames(nil, nil)
}

func (id *ImageDisplay) CameraImage() image.Image {
	return id.cameraImage.Image
}

func (id *ImageDisplay) ProcessedImage() image.Image {
	return id.processedImage.Image
}
