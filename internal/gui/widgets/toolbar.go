package widgets

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type Toolbar struct {
	container     *fyne.Container
	startButton   *widget.Button
	openButton    *widget.Button
	cameraButton  *widget.Button
	profileSelect *widget.Select
	statusLabel   *widget.Label
	statsLabel    *widget.Label

	running bool

	startHandler   func()
	stopHandler    func()
	openHandler    func()
	cameraHandler  func()
	profileHandler func(string)
}

func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.startButton = widget.NewButton("Start", t.onStartClicked)
	t.startButton.Importance = widget.HighImportance

	t.openButton = widget.NewButton("Open Image", t.onOpenClicked)
	t.cameraButton = widget.NewButton("Camera", t.onCameraClicked)

	t.profileSelect = widget.NewSelect(nil, t.onProfileChanged)
	t.profileSelect.PlaceHolder = "Profile"

	t.statusLabel = widget.NewLabel("Ready")
	t.statsLabel = widget.NewLabel("FPS: -- | Shapes: --")
}

func (t *Toolbar) buildLayout() {
	background := canvas.NewRectangle(color.RGBA{R: 38, G: 40, B: 44, A: 255})

	leftSection := container.NewHBox(t.startButton, t.cameraButton, t.openButton)
	centerSection := container.NewHBox(t.profileSelect, widget.NewSeparator(), t.statusLabel)
	rightSection := container.NewHBox(t.statsLabel)

	content := container.NewBorder(nil, nil, leftSection, rightSection, centerSection)

	t.container = container.NewStack(background, container.NewPadded(content))
}

func (t *Toolbar) onStartClicked() {
	if t.running {
		if t.stopHandler != nil {
			t.stopHandler()
		}
		return
	}
	if t.startHandler != nil {
		t.startHandler()
	}
}

func (t *Toolbar) onOpenClicked() {
	if t.openHandler != nil {
		t.openHandler()
	}
}

func (t *Toolbar) onCameraClicked() {
	if t.cameraHandler != nil {
		t.cameraHandler()
	}
}

func (t *Toolbar) onProfileChanged(name string) {
	if t.profileHandler != nil {
		t.profileHandler(name)
	}
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) SetStartHandler(handler func()) {
	t.startHandler = handler
}

func (t *Toolbar) SetStopHandler(handler func()) {
	t.stopHandler = handler
}

func (t *Toolbar) SetOpenHandler(handler func()) {
	t.openHandler = handler
}

func (t *Toolbar) SetCameraHandler(handler func()) {
	t.cameraHandler = handler
}

func (t *Toolbar) SetProfileChangeHandler(handler func(string)) {
	t.profileHandler = handler
}

// SetProfiles fills the selector without firing the change handler.
func (t *Toolbar) SetProfiles(names []string, selected string) {
	handler := t.profileHandler
	t.profileHandler = nil
	defer func() { t.profileHandler = handler }()

	t.profileSelect.Options = names
	t.profileSelect.SetSelected(selected)
}

func (t *Toolbar) SelectedProfile() string {
	return t.profileSelect.Selected
}

func (t *Toolbar) SetRunning(running bool) {
	t.running = running
	if running {
		t.startButton.SetText("Stop")
	} else {
		t.startButton.SetText("Start")
	}
}

func (t *Toolbar) IsRunning() bool {
	return t.running
}

func (t *Toolbar) SetStatus(status string) {
	t.statusLabel.SetText(status)
}

func (t *Toolbar) Status() string {
	return t.statusLabel.Text
}

func (t *Toolbar) SetStats(fps float64, shapes int, latency time.Duration) {
	if fps <= 0 {
		t.statsLabel.SetText(fmt.Sprintf("FPS: -- | Shapes: %d", shapes))
		return
	}
	t.statsLabel.SetText(fmt.Sprintf("FPS: %.1f | Shapes: %d | %d ms", fps, shapes, latency.Milliseconds()))
}

func (t *Toolbar) StatsText() string {
	return t.statsLabel.Text
}
