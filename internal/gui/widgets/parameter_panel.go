package widgets

import (
	"fmt"

	"shape-detector/internal/profiles"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

type sliderSpec struct {
	key    string
	label  string
	min    float64
	max    float64
	step   float64
	format string
}

var sliderSpecs = []sliderSpec{
	{key: profiles.ParamZoom, label: "Zoom", min: profiles.MinZoom, max: 2.5, step: 0.05, format: "%.2fx"},
	{key: profiles.ParamShadow, label: "Shadow", min: -100, max: 100, step: 1, format: "%+.0f"},
	{key: profiles.ParamContrast, label: "Contrast", min: 0.2, max: 3.0, step: 0.05, format: "%.2f"},
	{key: profiles.ParamSharpness, label: "Sharpness", min: 0, max: 3.0, step: 0.1, format: "%.1f"},
}

type parameterSlider struct {
	spec   sliderSpec
	slider *widget.Slider
	value  *widget.Label
}

// ParameterPanel exposes the live-tunable constants of the current profile.
type ParameterPanel struct {
	container       *fyne.Container
	titleLabel      *widget.Label
	sliders         map[string]*parameterSlider
	boundingSelect  *widget.Select
	bilateralCheck  *widget.Check
	changeHandler   func(string, interface{})
	suppressChanges bool
}

func NewParameterPanel() *ParameterPanel {
	panel := &ParameterPanel{
		sliders: make(map[string]*parameterSlider),
	}
	panel.createWidgets()
	panel.buildLayout()
	return panel
}

func (pp *ParameterPanel) createWidgets() {
	pp.titleLabel = widget.NewLabel("Profile: --")

	for _, spec := range sliderSpecs {
		spec := spec
		s := &parameterSlider{
			spec:   spec,
			slider: widget.NewSlider(spec.min, spec.max),
			value:  widget.NewLabel("--"),
		}
		s.slider.Step = spec.step
		s.slider.OnChanged = func(v float64) {
			s.value.SetText(fmt.Sprintf(spec.format, v))
			pp.emit(spec.key, v)
		}
		pp.sliders[spec.key] = s
	}

	pp.boundingSelect = widget.NewSelect(
		[]string{string(profiles.BoundingAxis), string(profiles.BoundingRotated)},
		func(mode string) { pp.emit(profiles.ParamBounding, mode) },
	)

	pp.bilateralCheck = widget.NewCheck("Bilateral filter", func(on bool) {
		pp.emit(profiles.ParamBilateral, on)
	})
}

func (pp *ParameterPanel) buildLayout() {
	form := container.New(layout.NewFormLayout())
	for _, spec := range sliderSpecs {
		s := pp.sliders[spec.key]
		form.Add(widget.NewLabel(spec.label))
		form.Add(container.NewBorder(nil, nil, nil, s.value, s.slider))
	}
	form.Add(widget.NewLabel("Bounding"))
	form.Add(container.NewHBox(pp.boundingSelect, pp.bilateralCheck))

	pp.container = container.NewVBox(pp.titleLabel, form)
}

func (pp *ParameterPanel) emit(name string, value interface{}) {
	if pp.suppressChanges || pp.changeHandler == nil {
		return
	}
	pp.changeHandler(name, value)
}

func (pp *ParameterPanel) GetContainer() *fyne.Container {
	return pp.container
}

func (pp *ParameterPanel) SetParameterChangeHandler(handler func(string, interface{})) {
	pp.changeHandler = handler
}

// ShowProfile loads a profile's values into the widgets without reporting
// them back as changes.
func (pp *ParameterPanel) ShowProfile(p profiles.Profile) {
	pp.suppressChanges = true
	defer func() { pp.suppressChanges = false }()

	pp.titleLabel.SetText("Profile: " + p.Name)

	values := map[string]float64{
		profiles.ParamZoom:      p.Zoom,
		profiles.ParamShadow:    p.Shadow,
		profiles.ParamContrast:  p.Contrast,
		profiles.ParamSharpness: p.Sharpness,
	}
	for key, v := range values {
		pp.sliders[key].slider.SetValue(v)
		pp.sliders[key].value.SetText(fmt.Sprintf(pp.sliders[key].spec.format, v))
	}

	pp.boundingSelect.SetSelected(string(p.Bounding))
	pp.bilateralCheck.SetChecked(p.Bilateral)
}

func (pp *ParameterPanel) SliderValue(key string) float64 {
	if s, ok := pp.sliders[key]; ok {
		return s.slider.Value
	}
	return 0
}

func (pp *ParameterPanel) Title() string {
	return pp.titleLabel.Text
}
