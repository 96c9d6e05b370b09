package gui

import (
	"image"
	"time"

	"shape-detector/internal/gui/widgets"
	"shape-detector/internal/profiles"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

type View struct {
	window     fyne.Window
	controller *Controller

	toolbar        *widgets.Toolbar
	imageDisplay   *widgets.ImageDisplay
	parameterPanel *widgets.ParameterPanel
	mainContainer  *fyne.Container
}

func NewView(window fyne.Window) *View {
	view := &View{
		window: window,
	}

	view.setupComponents()
	view.setupLayout()

	return view
}

func (v *View) SetController(controller *Controller) {
	v.controller = controller
	v.setupEventHandlers()
}

func (v *View) setupComponents() {
	v.toolbar = widgets.NewToolbar()
	v.imageDisplay = widgets.NewImageDisplay()
	v.parameterPanel = widgets.NewParameterPanel()
}

func (v *View) setupLayout() {
	v.mainContainer = container.NewVBox(
		v.imageDisplay.GetContainer(),
		v.toolbar.GetContainer(),
		v.parameterPanel.GetContainer(),
	)
}

func (v *View) setupEventHandlers() {
	if v.controller == nil {
		return
	}

	v.toolbar.SetStartHandler(v.controller.Start)
	v.toolbar.SetStopHandler(v.controller.Stop)
	v.toolbar.SetOpenHandler(v.controller.OpenImage)
	v.toolbar.SetCameraHandler(v.controller.UseCamera)
	v.toolbar.SetProfileChangeHandler(v.controller.ChangeProfile)

	v.parameterPanel.SetParameterChangeHandler(v.controller.UpdateParameter)
}

func (v *View) SetFrames(camera, processed image.Image) {
	v.imageDisplay.SetFrames(camera, processed)
}

func (v *View) SetProfiles(names []string, selected string) {
	v.toolbar.SetProfiles(names, selected)
}

func (v *View) ShowProfile(p profiles.Profile) {
	v.parameterPanel.ShowProfile(p)
}

func (v *View) SetRunning(running bool) {
	v.toolbar.SetRunning(running)
}

func (v *View) SetStatus(status string) {
	v.toolbar.SetStatus(status)
}

func (v *View) SetStats(fps float64, shapes int, latency time.Duration) {
	v.toolbar.SetStats(fps, shapes, latency)
}

func (v *View) ShowError(title string, err error) {
	dialog.ShowError(err, v.window)
}

func (v *View) ShowImageDialog(callback func(fyne.URIReadCloser, error)) {
	fileDialog := dialog.NewFileOpen(callback, v.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff"}))
	fileDialog.Show()
}

func (v *View) Show() {
	v.window.SetContent(v.mainContainer)
	v.window.Show()
}
