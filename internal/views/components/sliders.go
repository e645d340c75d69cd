package components

import (
	"instafilter/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const sliderStep = 0.01

// SliderPanel holds one unit slider per parameter role
type SliderPanel struct {
	container *fyne.Container
	sliders   map[models.Role]*widget.Slider
	labels    map[models.Role]*widget.Label

	changeHandler func(models.Role, float64)
	// set while the panel is being synced from state so OnChanged does not echo back
	updating bool
}

// NewSliderPanel creates the Intensity, Radius and Scale rows
func NewSliderPanel() *SliderPanel {
	sp := &SliderPanel{
		sliders: make(map[models.Role]*widget.Slider),
		labels:  make(map[models.Role]*widget.Label),
	}

	form := container.NewVBox()
	for _, role := range models.Roles() {
		form.Add(sp.createRow(role))
	}
	sp.container = form

	return sp
}

func (sp *SliderPanel) createRow(role models.Role) fyne.CanvasObject {
	label := widget.NewLabel(role.String())
	slider := widget.NewSlider(0, 1)
	slider.Step = sliderStep
	slider.SetValue(models.DefaultRawValue)

	slider.OnChanged = func(value float64) {
		if sp.updating || sp.changeHandler == nil {
			return
		}
		sp.changeHandler(role, value)
	}

	sp.sliders[role] = slider
	sp.labels[role] = label

	return container.NewBorder(nil, nil, label, nil, slider)
}

// SetChangeHandler sets the handler called when the user moves a slider
func (sp *SliderPanel) SetChangeHandler(handler func(models.Role, float64)) {
	sp.changeHandler = handler
}

// Sync shows the raw values of state and enables only its active slider
func (sp *SliderPanel) Sync(state models.EditorState) {
	sp.updating = true
	defer func() { sp.updating = false }()

	for role, slider := range sp.sliders {
		slider.SetValue(state.RawValue(role))

		if state.IsEnabled(role) {
			slider.Enable()
			sp.labels[role].Importance = widget.MediumImportance
		} else {
			slider.Disable()
			sp.labels[role].Importance = widget.LowImportance
		}
		sp.labels[role].Refresh()
	}
}

// Value returns the slider position for role
func (sp *SliderPanel) Value(role models.Role) float64 {
	if slider, ok := sp.sliders[role]; ok {
		return slider.Value
	}
	return 0
}

// Enabled reports whether the slider for role accepts input
func (sp *SliderPanel) Enabled(role models.Role) bool {
	if slider, ok := sp.sliders[role]; ok {
		return !slider.Disabled()
	}
	return false
}

// GetContainer returns the panel container
func (sp *SliderPanel) GetContainer() *fyne.Container {
	return sp.container
}
